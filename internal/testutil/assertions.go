// Package testutil provides assertions shared by the arith tests.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/arith/domain/entities"
	domainerrors "github.com/reglet-dev/arith/domain/errors"
)

// AssertErrorDetail asserts that err renders to an ErrorDetail with the
// given type and code, and returns the detail for further checks.
func AssertErrorDetail(t *testing.T, err error, wantType, wantCode string) *entities.ErrorDetail {
	t.Helper()

	require.Error(t, err)
	detail := domainerrors.ToErrorDetail(err)
	require.NotNil(t, detail)
	assert.Equal(t, wantType, detail.Type, "error type")
	assert.Equal(t, wantCode, detail.Code, "error code")
	assert.Equal(t, err.Error(), detail.Message, "error message")
	return detail
}

// DecodeErrorDetail parses a JSON-encoded ErrorDetail, as written by the
// CLI and the C last-error channel.
func DecodeErrorDetail(t *testing.T, data []byte) *entities.ErrorDetail {
	t.Helper()

	var detail entities.ErrorDetail
	require.NoError(t, json.Unmarshal(data, &detail), "invalid error detail JSON: %s", data)
	return &detail
}

// AssertMapContains asserts that a map contains all expected key-value pairs
func AssertMapContains(t *testing.T, expectedMap, actualMap map[string]any, msgAndArgs ...any) {
	t.Helper()

	for key, expectedValue := range expectedMap {
		actualValue, ok := actualMap[key]
		assert.True(t, ok, "map should contain key %q", key)
		assert.Equal(t, expectedValue, actualValue, msgAndArgs...)
	}
}
