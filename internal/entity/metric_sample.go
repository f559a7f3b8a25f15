package entity

import (
	"encoding/json"
	"fmt"
	"math"
)

// MetricSample is a single backend measurement. The timestamp stays a
// string-encoded integer so no precision is lost on the way to the client.
type MetricSample struct {
	Name            string      `json:"name"`
	Value           MetricValue `json:"value"`
	TimestampUnixMS string      `json:"timestamp_unix_ms"`
}

// MetricValue is a sample value that may be NaN or infinite. It reads the
// protobuf JSON spellings "NaN", "Infinity" and "-Infinity" and writes
// non-finite values as null.
type MetricValue float64

func (v MetricValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (v *MetricValue) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		return nil
	case `"NaN"`:
		*v = MetricValue(math.NaN())
		return nil
	case `"Infinity"`:
		*v = MetricValue(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*v = MetricValue(math.Inf(-1))
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("metric value %s: %w", data, err)
	}
	*v = MetricValue(f)
	return nil
}
