package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBMI(t *testing.T) {
	tests := []struct {
		name     string
		height   float64
		weight   float64
		expected float64
	}{
		{"typical adult", 170, 70, 24.2},
		{"rounds to one decimal", 180, 81.5, 25.2},
		{"tall and light", 190, 60, 16.6},
		{"zero height", 0, 70, 0},
		{"zero weight", 170, 0, 0},
		{"negative height", -170, 70, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateBMI(tt.height, tt.weight))
		})
	}
}

func TestMergeVitalsRecomputesBMI(t *testing.T) {
	previous := VitalsInfo{Height: 170, Weight: 80, BMI: 27.7, BloodGroup: "O+"}
	weight := 70.0

	merged := MergeVitals(VitalsPatch{Weight: &weight}, previous)

	assert.Equal(t, 170.0, merged.Height)
	assert.Equal(t, 70.0, merged.Weight)
	assert.Equal(t, 24.2, merged.BMI)
	assert.Equal(t, "O+", merged.BloodGroup)
}

func TestMergeVitalsKeepsUnsuppliedFields(t *testing.T) {
	previous := VitalsInfo{Height: 165, Weight: 60, BMI: 22.0, BloodGroup: "A-"}
	group := "B+"

	merged := MergeVitals(VitalsPatch{BloodGroup: &group}, previous)

	assert.Equal(t, 165.0, merged.Height)
	assert.Equal(t, 60.0, merged.Weight)
	assert.Equal(t, "B+", merged.BloodGroup)
	assert.Equal(t, 22.0, merged.BMI)
}

func TestMergeVitalsIntoEmptyRecord(t *testing.T) {
	height := 170.0
	merged := MergeVitals(VitalsPatch{Height: &height}, VitalsInfo{})

	assert.Equal(t, 170.0, merged.Height)
	assert.Zero(t, merged.Weight)
	assert.Zero(t, merged.BMI)
}
