package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiseaseList_DedupsAndTrims(t *testing.T) {
	list, err := NewDiseaseList([]string{"Diabetes", " Diabetes ", "Hypertension", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"Diabetes", "Hypertension"}, list.Strings())
}

func TestNewDiseaseList_RequiresAtLeastOne(t *testing.T) {
	_, err := NewDiseaseList(nil)
	assert.Error(t, err)

	_, err = NewDiseaseList([]string{"", "  "})
	assert.Error(t, err)
}

func TestNewDiseaseList_RejectsUnknownDisease(t *testing.T) {
	_, err := NewDiseaseList([]string{"Diabetes", "Dragon Pox"})
	assert.Error(t, err)
}

func TestNewEmail(t *testing.T) {
	email, err := NewEmail(" officer@ghs.gov.gh ")
	require.NoError(t, err)
	assert.Equal(t, "officer@ghs.gov.gh", email.String())

	// Contact email is optional.
	email, err = NewEmail("")
	require.NoError(t, err)
	assert.Equal(t, "", email.String())

	_, err = NewEmail("not-an-email")
	assert.Error(t, err)
}

func TestNewRegion_Canonicalises(t *testing.T) {
	region, err := NewRegion("greater accra")
	require.NoError(t, err)
	assert.Equal(t, "Greater Accra", region.String())
}
