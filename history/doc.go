// Package history turns entity_change events into InfluxDB points.
//
// Each change becomes one point of the entity_change measurement, tagged
// with entity_type, entity_id and device_id:
//
//	p, err := history.Point(change, time.Now())
//	fmt.Print(history.LineProtocol(p))
//
// A Recorder hands points to any PointWriter, normally the InfluxDB client
// from internal/infrastructure/influxdb, whose writes are batched and
// non-blocking.
package history
