package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorMapsDeadlineToTimeout(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("query events: %w", context.DeadlineExceeded), ErrInternal.Code, ErrInternal.Status, "failed to load events")

	got := FromError(wrapped)
	assert.Equal(t, ErrTimeout.Code, got.Code)
	assert.Equal(t, http.StatusGatewayTimeout, got.Status)
}

func TestFromErrorKeepsTypedError(t *testing.T) {
	got := FromError(Clone(ErrAlreadyRegistered, ""))
	assert.Equal(t, ErrAlreadyRegistered.Code, got.Code)
	assert.Equal(t, http.StatusConflict, got.Status)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	got := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
}
