package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"mobisync/internal/domain/job"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(http.StatusUnprocessableEntity, "validation failed",
		&huma.ErrorDetail{Message: "expected integer", Location: "query.days"})

	assert.Equal(t, http.StatusBadRequest, err.GetStatus())
	assert.Contains(t, err.Error(), "validation failed: ")
	assert.Contains(t, err.Error(), "expected integer")

	b, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	assert.JSONEq(t, fmt.Sprintf(`{"error": %q}`, err.Error()), string(b))
}

func TestFromJob(t *testing.T) {
	Setup()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid params", err: fmt.Errorf("%w: days", job.ErrInvalidParams), want: http.StatusBadRequest},
		{name: "invalid payload", err: job.ErrInvalidPayload, want: http.StatusBadRequest},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "already status error", err: huma.Error401Unauthorized("Unauthorized"), want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var se huma.StatusError
			require.ErrorAs(t, FromJob(tt.err), &se)
			assert.Equal(t, tt.want, se.GetStatus())
		})
	}

	assert.NoError(t, FromJob(nil))
}
