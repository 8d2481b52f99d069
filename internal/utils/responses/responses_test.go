package responses

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supchaser/aria2bot/internal/utils/errs"
	"github.com/supchaser/aria2bot/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func TestDoJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	DoJSONResponse(rec, map[string]int{"count": 2}, http.StatusOK)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())
}

func TestDoJSONResponse_Unmarshalable(t *testing.T) {
	rec := httptest.NewRecorder()
	DoJSONResponse(rec, make(chan int), http.StatusOK)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResponseErrorAndLog(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedText   string
	}{
		{
			name:           "serverNotFound",
			err:            fmt.Errorf("lookup: %w", errs.ErrServerNotFound),
			expectedStatus: http.StatusNotFound,
			expectedText:   "server not found",
		},
		{
			name:           "taskNotFound",
			err:            errs.ErrTaskNotFound,
			expectedStatus: http.StatusNotFound,
			expectedText:   "task not found",
		},
		{
			name:           "wrappedTaskNotFound",
			err:            fmt.Errorf("server home: %w", errs.ErrTaskNotFound),
			expectedStatus: http.StatusNotFound,
			expectedText:   "task not found",
		},
		{
			name:           "unknown",
			err:            errors.New("disk on fire"),
			expectedStatus: http.StatusInternalServerError,
			expectedText:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ResponseErrorAndLog(rec, tt.err, "TestResponseErrorAndLog")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body BadResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedStatus, body.Status)
			assert.Equal(t, tt.expectedText, body.Text)
		})
	}
}
