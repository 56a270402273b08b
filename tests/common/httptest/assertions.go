//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		err := json.Unmarshal(w.Body.Bytes(), targetStruct)
		assert.NoError(t, err, fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String()))
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d", expectedStatus, w.Code))

	var errorResponse struct {
		Error string `json:"error"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &errorResponse)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode error response JSON: %s", w.Body.String()))

	if expectedErrorMsg != "" {
		assert.Contains(t, errorResponse.Error, expectedErrorMsg,
			"Response error message doesn't contain expected text")
	}
}

// AssertRejection checks the conflict body booking refusals carry: the
// machine-readable reason plus the form-clearing hint.
func AssertRejection(t *testing.T, w *httptest.ResponseRecorder, expectedReason string, expectClearForm bool) {
	t.Helper()

	assert.Equal(t, 409, w.Code,
		fmt.Sprintf("Expected status 409, got %d. Response: %s", w.Code, w.Body.String()))

	var body struct {
		Error     string `json:"error"`
		Reason    string `json:"reason"`
		ClearForm bool   `json:"clear_form"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode rejection JSON: %s", w.Body.String()))

	assert.Equal(t, expectedReason, body.Reason)
	assert.Equal(t, expectClearForm, body.ClearForm)
	assert.NotEmpty(t, body.Error)
}
