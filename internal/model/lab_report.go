package model

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/portal-api/pkg/jsonguard"
)

// Lab report statuses.
const (
	ReportStatusNormal   = "normal"
	ReportStatusAbnormal = "abnormal"
	ReportStatusPending  = "pending"
)

// ReferenceRange is a test definition's normal interval.
type ReferenceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether value is inside the range. Boundary values are
// normal; only strictly outside readings are abnormal.
func (r ReferenceRange) Contains(value float64) bool {
	return value >= r.Low && value <= r.High
}

// LabTestResult is one measured analyte inside a report. It is embedded in the
// report's JSON column and never persisted on its own.
type LabTestResult struct {
	TestID         string         `json:"testId"`
	TestName       string         `json:"testName"`
	Value          float64        `json:"value"`
	Unit           string         `json:"unit"`
	ReferenceRange ReferenceRange `json:"referenceRange"`
	IsAbnormal     bool           `json:"isAbnormal"`
	CodingSystem   string         `json:"codingSystem,omitempty"`
}

// Flag recomputes the abnormal marker from the value and reference range.
func (t *LabTestResult) Flag() {
	t.IsAbnormal = !t.ReferenceRange.Contains(t.Value)
}

// LabReportRow mirrors the health_lab_reports table. Column names, including
// the unusual lowercase fileurl/testresults, are the external contract.
type LabReportRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      string    `db:"user_id"`
	Name        string    `db:"name"`
	Date        string    `db:"date"`
	Status      string    `db:"status"`
	FileURL     *string   `db:"fileurl"`
	TestResults []byte    `db:"testresults"`
	CreatedAt   time.Time `db:"created_at"`
}

// LabReport is a lab test batch result.
type LabReport struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Date        string          `json:"date"`
	Status      string          `json:"status"`
	FileURL     string          `json:"fileUrl"`
	TestResults []LabTestResult `json:"testResults"`
}

// NewLabReportRequest is the payload for adding a report.
type NewLabReportRequest struct {
	Name        string          `json:"name" binding:"required"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Status      string          `json:"status" binding:"omitempty,oneof=normal abnormal pending"`
	FileURL     string          `json:"fileUrl"`
	TestResults []LabTestResult `json:"testResults"`
}

// NewLabResultRequest is the payload for appending a result to a report.
type NewLabResultRequest struct {
	TestID         string         `json:"testId"`
	TestName       string         `json:"testName" binding:"required"`
	Value          float64        `json:"value"`
	Unit           string         `json:"unit"`
	ReferenceRange ReferenceRange `json:"referenceRange"`
	CodingSystem   string         `json:"codingSystem"`
}

// LabResultsGuard structurally validates a decoded testresults column: an
// array whose every element carries a testName. Primitive field types inside
// the elements are not deep-checked.
var LabResultsGuard = jsonguard.Decode[[]LabTestResult](func(v any) bool {
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := obj["testName"]; !ok {
			return false
		}
	}
	return true
})

// DeriveReportStatus decides a report's stored status: abnormal wins if any
// result is abnormal, an empty report is pending, otherwise the explicit
// value stands (defaulting to normal).
func DeriveReportStatus(explicit string, results []LabTestResult) string {
	for _, r := range results {
		if r.IsAbnormal {
			return ReportStatusAbnormal
		}
	}
	if len(results) == 0 {
		return ReportStatusPending
	}
	if explicit == "" {
		return ReportStatusNormal
	}
	return explicit
}

// SortReportsByDate orders reports ascending by date, stable for equal dates.
func SortReportsByDate(reports []*LabReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Date < reports[j].Date
	})
}

// Row maps the record back to its persisted shape.
func (r *LabReport) Row(userID string, now time.Time) *LabReportRow {
	results := r.TestResults
	if results == nil {
		results = []LabTestResult{}
	}
	encoded, err := json.Marshal(results)
	if err != nil {
		// Marshalling a slice of plain structs cannot fail; keep the
		// mapper total regardless.
		encoded = []byte("[]")
	}
	return &LabReportRow{
		ID:          r.ID,
		UserID:      userID,
		Name:        r.Name,
		Date:        r.Date,
		Status:      r.Status,
		FileURL:     strOrNil(r.FileURL),
		TestResults: encoded,
		CreatedAt:   now,
	}
}

// LabReportFromRow maps a persisted row to the application record. A
// testresults value that fails its guard folds to an empty slice; the caller
// logs the mismatch and moves on.
func LabReportFromRow(row *LabReportRow) (*LabReport, bool) {
	if row == nil {
		return nil, true
	}
	report := &LabReport{
		ID:      row.ID,
		Name:    row.Name,
		Date:    row.Date,
		Status:  row.Status,
		FileURL: strOrEmpty(row.FileURL),
	}
	if len(row.TestResults) == 0 {
		report.TestResults = []LabTestResult{}
		return report, true
	}
	results, ok := jsonguard.Parse(row.TestResults, LabResultsGuard)
	if !ok {
		report.TestResults = []LabTestResult{}
		return report, false
	}
	report.TestResults = results
	return report, true
}
