package model

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/portal-api/pkg/jsonguard"
)

// Known metric keys inside the metrics blob.
const (
	MetricBloodPressure = "bloodPressure"
	MetricHeartRate     = "heartRate"
	MetricGlucose       = "glucose"
	MetricWeight        = "weight"
)

// MetricReading is one sampled value of a vital sign.
type MetricReading struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// MetricRange is the optional normal band for a metric.
type MetricRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MetricData is one metric's series: unit, optional normal range, and
// readings kept sorted ascending by date.
type MetricData struct {
	Unit        string          `json:"unit"`
	NormalRange *MetricRange    `json:"normalRange,omitempty"`
	Readings    []MetricReading `json:"readings"`
}

// MetricsRow mirrors the health_metrics table: all of a user's series live in
// one JSON column keyed by metric name.
type MetricsRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    string    `db:"user_id"`
	Metrics   []byte    `db:"metrics"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewReadingRequest is the payload for appending a reading to a metric.
type NewReadingRequest struct {
	Metric string  `json:"metric" binding:"required"`
	Date   string  `json:"date" binding:"required,datetime=2006-01-02"`
	Value  float64 `json:"value" binding:"required"`
}

// MetricMapGuard structurally validates a decoded metrics column: an object
// whose every value is itself an object carrying a readings field. Field
// types inside are not deep-checked.
var MetricMapGuard = jsonguard.Decode[map[string]MetricData](func(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, mv := range m {
		obj, ok := mv.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := obj["readings"]; !ok {
			return false
		}
	}
	return true
})

// DefaultMetrics returns the zero-value metric map shown before any reading
// has been persisted.
func DefaultMetrics() map[string]MetricData {
	return map[string]MetricData{
		MetricBloodPressure: {Unit: "mmHg", NormalRange: &MetricRange{Min: 90, Max: 120}, Readings: []MetricReading{}},
		MetricHeartRate:     {Unit: "bpm", NormalRange: &MetricRange{Min: 60, Max: 100}, Readings: []MetricReading{}},
		MetricGlucose:       {Unit: "mg/dL", NormalRange: &MetricRange{Min: 70, Max: 140}, Readings: []MetricReading{}},
		MetricWeight:        {Unit: "kg", Readings: []MetricReading{}},
	}
}

// SortReadings orders readings ascending by date, stable for equal dates.
func SortReadings(readings []MetricReading) {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Date < readings[j].Date
	})
}

// AppendReading adds a reading to the named metric and restores the sort
// invariant. Unknown metric names start a fresh series.
func AppendReading(metrics map[string]MetricData, name string, reading MetricReading) map[string]MetricData {
	if metrics == nil {
		metrics = DefaultMetrics()
	}
	data := metrics[name]
	data.Readings = append(data.Readings, reading)
	SortReadings(data.Readings)
	metrics[name] = data
	return metrics
}

// MetricsFromRow decodes the blob, substituting defaults when the column is
// empty or fails its guard. The second return is false on a guard failure so
// the caller can log the mismatch.
func MetricsFromRow(row *MetricsRow) (map[string]MetricData, bool) {
	if row == nil || len(row.Metrics) == 0 {
		return DefaultMetrics(), true
	}
	metrics, ok := jsonguard.Parse(row.Metrics, MetricMapGuard)
	if !ok {
		return DefaultMetrics(), false
	}
	return metrics, true
}
