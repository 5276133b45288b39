package model

// DateLayout is the wire format for calendar dates in persisted rows and JSON
// columns. ISO dates sort lexicographically in chronological order, which the
// sorted-collection invariants rely on.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for time-of-day fields.
const TimeLayout = "15:04"

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intOrZero(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
