package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfileUnmarshal(t *testing.T) {
	var u UserProfile
	err := json.Unmarshal([]byte(`{"tastes":["history"],"expertiseLevel":3,"language":"en"}`), &u)
	require.NoError(t, err)
	assert.Equal(t, []string{"history"}, u.Tastes)
	assert.Equal(t, ExpertiseKnowledgeable, u.ExpertiseLevel)
	assert.Equal(t, "en", u.Language)
}

func TestUserProfileUnmarshalStringLevel(t *testing.T) {
	var u UserProfile
	err := json.Unmarshal([]byte(`{"expertiseLevel":"2","language":"it"}`), &u)
	require.NoError(t, err)
	assert.Equal(t, ExpertiseNovice, u.ExpertiseLevel)

	err = json.Unmarshal([]byte(`{"expertiseLevel":"high","language":"it"}`), &u)
	assert.Error(t, err)
}

func TestUserProfileUnmarshalDefaultsLevel(t *testing.T) {
	var u UserProfile
	err := json.Unmarshal([]byte(`{"language":"en"}`), &u)
	require.NoError(t, err)
	assert.Equal(t, ExpertiseChild, u.ExpertiseLevel, "missing level falls back to the lowest")
}

func TestUserProfileValidate(t *testing.T) {
	u := UserProfile{ExpertiseLevel: ExpertiseNovice, Language: "en"}
	assert.NoError(t, u.Validate())

	u.ExpertiseLevel = 0
	assert.ErrorIs(t, u.Validate(), ErrInvalidProfile)

	u.ExpertiseLevel = 5
	assert.ErrorIs(t, u.Validate(), ErrInvalidProfile)

	u.ExpertiseLevel = ExpertiseNovice
	u.Language = ""
	assert.ErrorIs(t, u.Validate(), ErrInvalidProfile)
}
