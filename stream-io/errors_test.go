package streamio

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindLabels(t *testing.T) {
	tests := []struct {
		kind  ErrorKind
		label string
	}{
		{Interrupted, "operation interrupted"},
		{InvalidInput, "invalid input parameter"},
		{InvalidData, "invalid data"},
		{Other, "other error"},
		{WriteZero, "write zero"},
		{UnexpectedEOF, "unexpected end of file"},
		{ErrorKind(200), "unknown error kind"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.label, tt.kind.String())
	}
}

func TestSimpleError(t *testing.T) {
	err := WriteZero.Err()
	assert.Equal(t, WriteZero, err.Kind())
	assert.Equal(t, "write zero", err.Error())
	assert.Nil(t, err.Unwrap())
	assert.True(t, err == ErrWriteZero)
	assert.Equal(t, "Kind(write zero)", fmt.Sprintf("%+v", err))
}

func TestSimpleErrorDoesNotAllocate(t *testing.T) {
	var err error
	allocs := testing.AllocsPerRun(100, func() {
		err = UnexpectedEOF.Err()
	})
	assert.Equal(t, float64(0), allocs)
	assert.Equal(t, UnexpectedEOF, KindOf(err))
}

func TestCustomError(t *testing.T) {
	cause := errors.New("checksum mismatch")

	tests := []struct {
		name    string
		payload interface{}
		text    string
	}{
		{"string", "failed to fill whole buffer", "failed to fill whole buffer"},
		{"error", cause, "checksum mismatch"},
		{"stringer", kindStringer{}, "stringer payload"},
		{"other", 42, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(InvalidData, tt.payload)
			assert.Equal(t, InvalidData, err.Kind())
			assert.Equal(t, tt.text, err.Error())
			assert.NotNil(t, err.Unwrap())
			assert.Equal(t, "Custom { kind: invalid data, error: "+tt.text+" }", fmt.Sprintf("%+v", err))
		})
	}

	err := NewError(InvalidData, cause)
	assert.True(t, errors.Is(err, cause))
}

type kindStringer struct{}

func (kindStringer) String() string { return "stringer payload" }

func TestErrorIsMatchesKind(t *testing.T) {
	custom := NewError(UnexpectedEOF, "short frame")
	assert.True(t, errors.Is(custom, ErrUnexpectedEOF))
	assert.False(t, errors.Is(custom, ErrWriteZero))

	wrapped := fmt.Errorf("decode header: %w", custom)
	assert.True(t, errors.Is(wrapped, ErrUnexpectedEOF))
	assert.Equal(t, UnexpectedEOF, KindOf(wrapped))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Other, KindOf(errors.New("plain")))
	assert.Equal(t, Interrupted, KindOf(ErrInterrupted))
	assert.True(t, IsInterrupted(NewError(Interrupted, "signal")))
	assert.False(t, IsInterrupted(ErrOther))
	assert.False(t, IsInterrupted(nil))
}
