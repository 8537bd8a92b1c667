package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/intg"
)

// Measurement is the InfluxDB measurement every entity change is written to.
const Measurement = "entity_change"

// Tag keys.
const (
	TagEntityType = "entity_type"
	TagEntityID   = "entity_id"
	TagDeviceID   = "device_id"
)

var (
	// ErrNoFields is returned for a change without any non-null attribute.
	// InfluxDB rejects points without fields.
	ErrNoFields = errors.New("history: entity change has no attribute values")

	// ErrNotEntityChange is returned by Recorder.RecordMessage for messages
	// other than entity_change.
	ErrNotEntityChange = errors.New("history: not an entity_change message")
)

// Point converts an entity change into an InfluxDB point at ts.
//
// The entity type, entity id and, when set, the device id become tags. Each
// attribute becomes a field: strings, booleans and numbers are written as is,
// arrays and objects as their JSON text. Null attributes are skipped.
func Point(change intg.EntityChange, ts time.Time) (*write.Point, error) {
	if err := change.Validate(); err != nil {
		return nil, fmt.Errorf("invalid entity change: %w", err)
	}

	p := write.NewPointWithMeasurement(Measurement).
		AddTag(TagEntityType, string(change.EntityType)).
		AddTag(TagEntityID, change.EntityID)
	if change.DeviceID != "" {
		p.AddTag(TagDeviceID, change.DeviceID)
	}

	fields := 0
	for _, key := range slices.Sorted(maps.Keys(change.Attributes)) {
		v, ok, err := fieldValue(change.Attributes[key])
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", key, err)
		}
		if !ok {
			continue
		}
		p.AddField(key, v)
		fields++
	}
	if fields == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNoFields, change.EntityType, change.EntityID)
	}

	return p.SortTags().SortFields().SetTime(ts), nil
}

// fieldValue maps an attribute value to a line protocol field value. ok is
// false for null.
func fieldValue(v any) (any, bool, error) {
	switch v := v.(type) {
	case nil:
		return nil, false, nil
	case json.Number:
		f, err := v.Float64()
		return f, err == nil, err
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return v, true, nil
	}

	// Named string and number types, such as attribute enums.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true, nil
	case reflect.Bool:
		return rv.Bool(), true, nil
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true, nil
	}

	data, err := codec.Marshal(v)
	if err != nil {
		return nil, false, err
	}
	return string(data), true, nil
}

func finite(f float64) (any, bool, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false, fmt.Errorf("%w: %v", codec.ErrUnrepresentable, f)
	}
	return f, true, nil
}

// LineProtocol renders points as InfluxDB line protocol with nanosecond
// timestamps, one line per point.
func LineProtocol(points ...*write.Point) string {
	var sb strings.Builder
	for _, p := range points {
		sb.WriteString(write.PointToLineProtocol(p, time.Nanosecond))
	}
	return sb.String()
}
