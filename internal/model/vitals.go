package model

import (
	"math"

	"github.com/google/uuid"
)

// VitalsRow mirrors the health_vitals table, one row per user. Height is
// centimeters, weight kilograms.
type VitalsRow struct {
	ID         uuid.UUID `db:"id"`
	UserID     string    `db:"user_id"`
	Height     *float64  `db:"height"`
	Weight     *float64  `db:"weight"`
	BMI        *float64  `db:"bmi"`
	BloodGroup *string   `db:"blood_group"`
}

// VitalsInfo is the biometric snapshot of the health record.
type VitalsInfo struct {
	Height     float64 `json:"height"`
	Weight     float64 `json:"weight"`
	BMI        float64 `json:"bmi"`
	BloodGroup string  `json:"bloodGroup"`
}

// VitalsPatch carries the fields supplied in an update. BMI is never accepted
// from the caller; it is derived before every persist.
type VitalsPatch struct {
	Height     *float64 `json:"height" binding:"omitempty,gt=0,max=300"`
	Weight     *float64 `json:"weight" binding:"omitempty,gt=0,max=700"`
	BloodGroup *string  `json:"bloodGroup" binding:"omitempty,bloodgroup"`
}

func VitalsFromRow(row *VitalsRow) *VitalsInfo {
	if row == nil {
		return nil
	}
	return &VitalsInfo{
		Height:     floatOrZero(row.Height),
		Weight:     floatOrZero(row.Weight),
		BMI:        floatOrZero(row.BMI),
		BloodGroup: strOrEmpty(row.BloodGroup),
	}
}

func (v *VitalsInfo) Row(id uuid.UUID, userID string) *VitalsRow {
	height := v.Height
	weight := v.Weight
	bmi := v.BMI
	return &VitalsRow{
		ID:         id,
		UserID:     userID,
		Height:     &height,
		Weight:     &weight,
		BMI:        &bmi,
		BloodGroup: strOrNil(v.BloodGroup),
	}
}

// MergeVitals fills unsupplied patch fields from the previous record and
// recomputes BMI from the merged height and weight. Stale BMI is never kept:
// a patch that changes only weight still derives against the previous height.
func MergeVitals(patch VitalsPatch, previous VitalsInfo) VitalsInfo {
	merged := previous
	if patch.Height != nil {
		merged.Height = *patch.Height
	}
	if patch.Weight != nil {
		merged.Weight = *patch.Weight
	}
	if patch.BloodGroup != nil {
		merged.BloodGroup = *patch.BloodGroup
	}
	merged.BMI = CalculateBMI(merged.Height, merged.Weight)
	return merged
}

// CalculateBMI derives body mass index from height in centimeters and weight
// in kilograms, rounded to one decimal. Non-positive inputs yield 0.
func CalculateBMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	meters := heightCm / 100
	return math.Round(weightKg/(meters*meters)*10) / 10
}
