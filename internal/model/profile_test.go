package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeProfile(t *testing.T) {
	previous := Profile{
		ID:        "user-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}

	phone := "+15551234"
	completed := true
	merged := MergeProfile(ProfilePatch{Phone: &phone, HasCompletedProfile: &completed}, previous)

	assert.Equal(t, "Ada", merged.FirstName)
	assert.Equal(t, "ada@example.com", merged.Email)
	assert.Equal(t, "+15551234", merged.Phone)
	assert.True(t, merged.HasCompletedProfile)
}

func TestMergeProfileEmptyStringOverwrites(t *testing.T) {
	previous := Profile{FirstName: "Ada"}
	empty := ""

	merged := MergeProfile(ProfilePatch{FirstName: &empty}, previous)
	assert.Empty(t, merged.FirstName)
}

func TestProfileRowRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	p := &Profile{
		ID:                  "user-1",
		FirstName:           "Ada",
		Email:               "ada@example.com",
		HasCompletedProfile: true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	row := p.Row()
	require.NotNil(t, row.FirstName)
	assert.Nil(t, row.LastName)
	assert.Nil(t, row.Phone)

	decoded := ProfileFromRow(row)
	assert.Equal(t, p, decoded)
}

func TestMinimalProfile(t *testing.T) {
	now := time.Now()
	p := MinimalProfile("user-1", now)

	assert.Equal(t, "user-1", p.ID)
	assert.False(t, p.HasCompletedProfile)
	assert.Empty(t, p.FirstName)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}
