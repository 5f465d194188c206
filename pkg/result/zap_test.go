package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func Test_LogObjectOfSuccess(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, Ok("secret payload").MarshalLogObject(enc))

	assert.Equal(t, map[string]any{"succeeded": true}, enc.Fields)
}

func Test_LogObjectOfFailureIncludesCause(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	r := FromError[int](errors.New("dial tcp: refused"))
	require.NoError(t, r.MarshalLogObject(enc))

	assert.Equal(t, false, enc.Fields["succeeded"])
	assert.Equal(t, "dial tcp: refused", enc.Fields["errorMessage"])
	assert.Equal(t, "dial tcp: refused", enc.Fields["cause"])
}

func Test_LogObjectOfValidationFailure(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	r := Validate(InvalidField("name", "name is required"), Invalid("other"))
	require.NoError(t, r.MarshalLogObject(enc))

	failures, ok := enc.Fields["validationFailures"].([]any)
	require.True(t, ok)
	require.Len(t, failures, 2)
	assert.Equal(t, map[string]any{"field": "name", "message": "name is required"}, failures[0])
	assert.Equal(t, map[string]any{"message": "other"}, failures[1])
}
