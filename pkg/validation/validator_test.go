package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusRequest struct {
	Status string `json:"status" validate:"required,max=5"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&statusRequest{})
	require.Error(t, err)
	assert.Equal(t, "status is required", Message(err))

	err = v.Validate(&statusRequest{Status: "Shipped"})
	require.Error(t, err)
	assert.Equal(t, "status must be at most 5 characters", Message(err))

	assert.NoError(t, v.Validate(&statusRequest{Status: "New"}))
}

func TestMessage_NonValidationError(t *testing.T) {
	assert.Equal(t, "Invalid request data", Message(errors.New("boom")))
}
