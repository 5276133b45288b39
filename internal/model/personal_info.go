package model

import "github.com/google/uuid"

// PersonalInfoRow mirrors the health_personal_info table, one row per user.
type PersonalInfoRow struct {
	ID            uuid.UUID `db:"id"`
	UserID        string    `db:"user_id"`
	FullName      *string   `db:"full_name"`
	Age           *int      `db:"age"`
	Gender        *string   `db:"gender"`
	MaritalStatus *string   `db:"marital_status"`
	Children      *int      `db:"children"`
	Address       *string   `db:"address"`
}

// PersonalInfo is the demographic section of the health record.
type PersonalInfo struct {
	FullName      string `json:"fullName"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"maritalStatus"`
	Children      int    `json:"children"`
	Address       string `json:"address"`
}

// PersonalInfoPatch carries the fields supplied in an update.
type PersonalInfoPatch struct {
	FullName      *string `json:"fullName"`
	Age           *int    `json:"age" binding:"omitempty,min=0,max=150"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"maritalStatus"`
	Children      *int    `json:"children" binding:"omitempty,min=0"`
	Address       *string `json:"address"`
}

func PersonalInfoFromRow(row *PersonalInfoRow) *PersonalInfo {
	if row == nil {
		return nil
	}
	return &PersonalInfo{
		FullName:      strOrEmpty(row.FullName),
		Age:           intOrZero(row.Age),
		Gender:        strOrEmpty(row.Gender),
		MaritalStatus: strOrEmpty(row.MaritalStatus),
		Children:      intOrZero(row.Children),
		Address:       strOrEmpty(row.Address),
	}
}

func (p *PersonalInfo) Row(id uuid.UUID, userID string) *PersonalInfoRow {
	age := p.Age
	children := p.Children
	return &PersonalInfoRow{
		ID:            id,
		UserID:        userID,
		FullName:      strOrNil(p.FullName),
		Age:           &age,
		Gender:        strOrNil(p.Gender),
		MaritalStatus: strOrNil(p.MaritalStatus),
		Children:      &children,
		Address:       strOrNil(p.Address),
	}
}

func MergePersonalInfo(patch PersonalInfoPatch, previous PersonalInfo) PersonalInfo {
	merged := previous
	if patch.FullName != nil {
		merged.FullName = *patch.FullName
	}
	if patch.Age != nil {
		merged.Age = *patch.Age
	}
	if patch.Gender != nil {
		merged.Gender = *patch.Gender
	}
	if patch.MaritalStatus != nil {
		merged.MaritalStatus = *patch.MaritalStatus
	}
	if patch.Children != nil {
		merged.Children = *patch.Children
	}
	if patch.Address != nil {
		merged.Address = *patch.Address
	}
	return merged
}
