package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapFormatsContext(t *testing.T) {
	base := stderrors.New("boom")
	wrapped := Wrap(base, "Worker", "connect", "websocket upgrade")
	require.Error(t, wrapped)
	assert.Equal(t, "Worker.connect: websocket upgrade failed: boom", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))

	assert.Nil(t, Wrap(nil, "Worker", "connect", "anything"))
}

func TestClassifiedWrappers(t *testing.T) {
	base := stderrors.New("boom")

	transient := WrapTransient(base, "Worker", "connect", "dial")
	assert.True(t, IsTransient(transient))
	assert.False(t, IsInvalid(transient))
	assert.Equal(t, ErrorTransient, Classify(transient))

	invalid := WrapInvalid(base, "Config", "Validate", "check port")
	assert.True(t, IsInvalid(invalid))
	assert.False(t, IsTransient(invalid))
	assert.Equal(t, ErrorInvalid, Classify(invalid))

	fatal := WrapFatal(base, "Client", "New", "register metrics")
	assert.True(t, IsFatal(fatal))
	assert.Equal(t, ErrorFatal, Classify(fatal))
}

func TestSentinelClassification(t *testing.T) {
	assert.True(t, IsTransient(ErrConnectionLost))
	assert.True(t, IsTransient(ErrConnectionUnavailable))
	assert.True(t, IsTransient(ErrQueryTimeout))
	assert.True(t, IsInvalid(ErrAnonymousTopLevel))
	assert.True(t, IsInvalid(ErrInvalidConfig))
	assert.False(t, IsTransient(nil))
	assert.False(t, IsInvalid(nil))
}

func TestErrorClassString(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
}

func TestQueryError(t *testing.T) {
	qe := NewQueryError(CodeScriptEvaluationError, "script blew up")
	assert.Equal(t, "SCRIPT_EVALUATION_ERROR: script blew up", qe.Error())

	bare := NewQueryError(CodeConnectionUnavailable, "")
	assert.Equal(t, "CONNECTION_UNAVAILABLE", bare.Error())
}

func TestAsQueryError(t *testing.T) {
	qe := NewQueryError(CodeServerError, "oops")
	wrapped := Wrap(qe, "Worker", "Query", "assemble response")

	extracted := AsQueryError(wrapped)
	require.NotNil(t, extracted)
	assert.Equal(t, CodeServerError, extracted.Code)

	assert.Nil(t, AsQueryError(stderrors.New("plain")))
	assert.Nil(t, AsQueryError(nil))
}

func TestUnwrapChain(t *testing.T) {
	base := stderrors.New("root cause")
	wrapped := WrapTransient(base, "Worker", "connect", "dial")
	assert.True(t, Is(wrapped, base))

	var ce *ClassifiedError
	assert.True(t, As(wrapped, &ce))
	assert.Equal(t, "Worker", ce.Component)
	assert.Equal(t, "connect", ce.Operation)
}
