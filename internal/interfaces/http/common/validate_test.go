package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_UsesJSONFieldNames(t *testing.T) {
	type payload struct {
		PartnerMappings []string `json:"partnerMappings" validate:"required,min=1"`
	}

	fieldErrs := ValidateStruct(payload{})
	require.NotNil(t, fieldErrs)
	assert.Contains(t, fieldErrs, "partnerMappings")
	assert.NotContains(t, fieldErrs, "PartnerMappings")
}

func TestValidateStruct_NestedFieldPath(t *testing.T) {
	type inner struct {
		Name string `json:"organisationName" validate:"required"`
	}
	type payload struct {
		Organisation inner `json:"organisationInfo"`
	}

	fieldErrs := ValidateStruct(payload{})
	require.NotNil(t, fieldErrs)
	assert.Contains(t, fieldErrs, "organisationInfo.organisationName")
}

func TestValidateStruct_ValidPayloadReturnsNil(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	assert.Nil(t, ValidateStruct(payload{Email: "officer@ghs.gov.gh"}))
}

func TestValidateStruct_EmailFormat(t *testing.T) {
	type payload struct {
		Email string `json:"contactEmail" validate:"omitempty,email"`
	}

	assert.Nil(t, ValidateStruct(payload{}))
	fieldErrs := ValidateStruct(payload{Email: "not-an-email"})
	require.NotNil(t, fieldErrs)
	assert.Contains(t, fieldErrs, "contactEmail")
}
