package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"duplicate", DuplicateName("Al Fakher"), CodeDuplicateName},
		{"wrapped not found", fmt.Errorf("lookup: %w", NotFound("Adalya")), CodeNotFound},
		{"validation", Validation("taste", errors.New("not a number")), CodeValidation},
		{"plain error", errors.New("connection refused"), CodeTransportFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Transport("create tobacco", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, CodeTransportFailure))
	assert.False(t, Is(err, CodeNotFound))
	assert.Contains(t, err.Error(), "create tobacco")
}
