package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cases := []struct {
		name   string
		err    error
		status int
		code   domain.ErrorCode
		field  string
	}{
		{"validation", domain.NewValidationError(domain.CodeInvalidBirthData, "latitude", "out of range"), http.StatusBadRequest, domain.CodeInvalidBirthData, "latitude"},
		{"not found", fmt.Errorf("profile x: %w", domain.ErrNotFound), http.StatusNotFound, domain.CodeNotFound, ""},
		{"unavailable", domain.ErrTemporaryUnavailable, http.StatusServiceUnavailable, domain.CodeGenerationFailed, ""},
		{"computation", domain.NewComputationError("natal", domain.CodeComputationFailed, errors.New("x")), http.StatusInternalServerError, domain.CodeComputationFailed, ""},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, domain.CodeInternal, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Fail(c, log, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var env Envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
			assert.Equal(t, tc.field, env.Error.Field)
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}
