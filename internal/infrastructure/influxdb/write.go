package influxdb

import (
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WritePoint queues a point for writing.
//
// The write is non-blocking; points are batched and sent asynchronously, and
// failures are reported through the SetOnError callback. Points written
// while disconnected are dropped.
func (c *Client) WritePoint(p *write.Point) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(p)
}
