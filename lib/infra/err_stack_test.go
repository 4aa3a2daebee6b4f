package infra

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestErrorStackFrames(t *testing.T) {
	err := NewErrorStack("broken thread")
	require.Error(t, err)
	require.Equal(t, "broken thread", err.Error())
	require.True(t, IsErrorStack(err))

	var es ErrorStack
	require.True(t, errors.As(err, &es))
	require.NotEmpty(t, es.Frames())
	require.Equal(t, "TestErrorStackFrames", fmt.Sprintf("%n", es.Frames()[0]))
	require.Equal(t, "err_stack_test.go", fmt.Sprintf("%s", es.Frames()[0]))
}

func TestWrapErrorStack(t *testing.T) {
	require.NoError(t, WrapErrorStack(nil, "nothing"))

	base := errors.New("root cause")
	err := WrapErrorStack(base, "validate")
	require.Equal(t, "validate: root cause", err.Error())
	require.ErrorIs(t, err, base)
	require.False(t, IsErrorStack(base))
}

func TestErrorStackMarshalLogObject(t *testing.T) {
	err := NewErrorStack("red violation")
	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, err.(ErrorStack).MarshalLogObject(enc))
	require.Equal(t, "red violation", enc.Fields["error"])
	frames, ok := enc.Fields["errorStack"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, frames)
}

func TestFrameFormatUnknown(t *testing.T) {
	text, err := Frame(0).MarshalText()
	require.NoError(t, err)
	require.Equal(t, "unknownFrame", string(text))
	require.Equal(t, "unknownFile:0", fmt.Sprintf("%v", Frame(0)))
}
