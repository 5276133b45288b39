package model

import "time"

// ProfileRow mirrors the profiles table. The row id is the owning user's id
// from the auth provider, so existence is a primary-key lookup.
type ProfileRow struct {
	ID                  string    `db:"id"`
	FirstName           *string   `db:"first_name"`
	LastName            *string   `db:"last_name"`
	Email               *string   `db:"email"`
	Phone               *string   `db:"phone"`
	HasCompletedProfile bool      `db:"has_completed_profile"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// Profile is the account-level identity record.
type Profile struct {
	ID                  string    `json:"id"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	HasCompletedProfile bool      `json:"hasCompletedProfile"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ProfilePatch carries the fields a caller chose to supply.
type ProfilePatch struct {
	FirstName           *string `json:"firstName"`
	LastName            *string `json:"lastName"`
	Email               *string `json:"email" binding:"omitempty,email"`
	Phone               *string `json:"phone"`
	HasCompletedProfile *bool   `json:"hasCompletedProfile"`
}

// ProfileFromRow maps a persisted row to the application record. NULL columns
// fold to zero values; the mapping is total.
func ProfileFromRow(row *ProfileRow) *Profile {
	if row == nil {
		return nil
	}
	return &Profile{
		ID:                  row.ID,
		FirstName:           strOrEmpty(row.FirstName),
		LastName:            strOrEmpty(row.LastName),
		Email:               strOrEmpty(row.Email),
		Phone:               strOrEmpty(row.Phone),
		HasCompletedProfile: row.HasCompletedProfile,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}

// Row maps the record back to its persisted shape. Empty strings fold to NULL,
// the documented lossy edge of the round trip.
func (p *Profile) Row() *ProfileRow {
	return &ProfileRow{
		ID:                  p.ID,
		FirstName:           strOrNil(p.FirstName),
		LastName:            strOrNil(p.LastName),
		Email:               strOrNil(p.Email),
		Phone:               strOrNil(p.Phone),
		HasCompletedProfile: p.HasCompletedProfile,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// MergeProfile fills unsupplied patch fields from the previous record.
func MergeProfile(patch ProfilePatch, previous Profile) Profile {
	merged := previous
	if patch.FirstName != nil {
		merged.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		merged.LastName = *patch.LastName
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Phone != nil {
		merged.Phone = *patch.Phone
	}
	if patch.HasCompletedProfile != nil {
		merged.HasCompletedProfile = *patch.HasCompletedProfile
	}
	return merged
}

// MinimalProfile is the row inserted by the bootstrap when no profile exists:
// just the user id, an unset completion flag and fresh timestamps.
func MinimalProfile(userID string, now time.Time) *Profile {
	return &Profile{
		ID:        userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
