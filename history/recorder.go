package history

import (
	"fmt"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/intg"
	"github.com/nerrad567/ucapi/intg/messages"
	"github.com/nerrad567/ucapi/ws"
)

// PointWriter accepts points for asynchronous delivery. It is satisfied by
// the InfluxDB client and by api.WriteAPI.
type PointWriter interface {
	WritePoint(p *write.Point)
}

// Recorder writes entity changes to a PointWriter.
type Recorder struct {
	w      PointWriter
	now    func() time.Time
	policy codec.Policy
}

// NewRecorder returns a Recorder writing to w. Event payloads are decoded
// leniently.
func NewRecorder(w PointWriter) *Recorder {
	return &Recorder{w: w, now: time.Now, policy: codec.Lenient}
}

// SetDecodePolicy sets the policy RecordMessage decodes payloads with.
func (r *Recorder) SetDecodePolicy(p codec.Policy) {
	r.policy = p
}

// Record writes change timestamped now.
func (r *Recorder) Record(change intg.EntityChange) error {
	return r.RecordAt(change, r.now())
}

// RecordAt writes change timestamped ts.
func (r *Recorder) RecordAt(change intg.EntityChange, ts time.Time) error {
	p, err := Point(change, ts)
	if err != nil {
		return err
	}
	r.w.WritePoint(p)
	return nil
}

// RecordMessage decodes an entity_change event and writes it. The event
// timestamp is used when present.
func (r *Recorder) RecordMessage(m ws.Message) error {
	if m.Msg != string(messages.DriverEventEntityChange) || (m.Kind != "" && m.Kind != ws.KindEvent) {
		return fmt.Errorf("%w: %s %q", ErrNotEntityChange, m.Kind, m.Msg)
	}
	var change intg.EntityChange
	if err := ws.DecodeDataPolicy(m.MsgData, &change, r.policy); err != nil {
		return fmt.Errorf("decoding entity_change: %w", err)
	}
	ts := r.now()
	if m.TS != nil {
		ts = *m.TS
	}
	return r.RecordAt(change, ts)
}
