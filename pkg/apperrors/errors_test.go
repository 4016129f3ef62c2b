package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("archive supplier 4: %w", NotFound("Supplier not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrConflict))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.Status())
	assert.Equal(t, http.StatusBadRequest, KindConflict.Status())
	assert.Equal(t, http.StatusNotFound, KindNotFound.Status())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.Status())
}

func TestDisplayMessage_HidesCause(t *testing.T) {
	err := Internal("Failed to delete supplier", errors.New("pq: deadlock detected"))

	assert.Equal(t, "Failed to delete supplier", DisplayMessage(err, "Internal server error"))
	assert.Equal(t, "Internal server error", DisplayMessage(errors.New("raw"), "Internal server error"))
	assert.ErrorContains(t, err, "deadlock")
}
