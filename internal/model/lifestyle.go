package model

import "github.com/google/uuid"

// Lifestyle enumerations. Values are the persisted strings.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"

	SmokingNever   = "never"
	SmokingFormer  = "former"
	SmokingCurrent = "current"

	AlcoholNone       = "none"
	AlcoholOccasional = "occasional"
	AlcoholRegular    = "regular"
)

// LifestyleRow mirrors the health_lifestyle table, one row per user.
type LifestyleRow struct {
	ID                 uuid.UUID `db:"id"`
	UserID             string    `db:"user_id"`
	ActivityLevel      *string   `db:"activity_level"`
	SmokingStatus      *string   `db:"smoking_status"`
	AlcoholConsumption *string   `db:"alcohol_consumption"`
}

// LifestyleInfo is the behavioral section of the health record.
type LifestyleInfo struct {
	ActivityLevel      string `json:"activityLevel"`
	SmokingStatus      string `json:"smokingStatus"`
	AlcoholConsumption string `json:"alcoholConsumption"`
}

// LifestylePatch carries the fields supplied in an update.
type LifestylePatch struct {
	ActivityLevel      *string `json:"activityLevel" binding:"omitempty,oneof=sedentary light moderate active very_active"`
	SmokingStatus      *string `json:"smokingStatus" binding:"omitempty,oneof=never former current"`
	AlcoholConsumption *string `json:"alcoholConsumption" binding:"omitempty,oneof=none occasional regular"`
}

func LifestyleFromRow(row *LifestyleRow) *LifestyleInfo {
	if row == nil {
		return nil
	}
	return &LifestyleInfo{
		ActivityLevel:      strOrEmpty(row.ActivityLevel),
		SmokingStatus:      strOrEmpty(row.SmokingStatus),
		AlcoholConsumption: strOrEmpty(row.AlcoholConsumption),
	}
}

func (l *LifestyleInfo) Row(id uuid.UUID, userID string) *LifestyleRow {
	return &LifestyleRow{
		ID:                 id,
		UserID:             userID,
		ActivityLevel:      strOrNil(l.ActivityLevel),
		SmokingStatus:      strOrNil(l.SmokingStatus),
		AlcoholConsumption: strOrNil(l.AlcoholConsumption),
	}
}

func MergeLifestyle(patch LifestylePatch, previous LifestyleInfo) LifestyleInfo {
	merged := previous
	if patch.ActivityLevel != nil {
		merged.ActivityLevel = *patch.ActivityLevel
	}
	if patch.SmokingStatus != nil {
		merged.SmokingStatus = *patch.SmokingStatus
	}
	if patch.AlcoholConsumption != nil {
		merged.AlcoholConsumption = *patch.AlcoholConsumption
	}
	return merged
}
