package errs

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMsg_FormatsKnownCode(t *testing.T) {
	got := Msg(MissingSetting, "--site-name", "SITE")
	assert.Equal(t, "--site-name or $SITE is required", got)
}

func TestMsg_UnknownCodeFallsBackToCode(t *testing.T) {
	got := Msg(Code("NOPE"))
	assert.Equal(t, "NOPE", got)
}

func TestError_MatchesKindAndCause(t *testing.T) {
	err := Transport("put", "foo.json", io.ErrUnexpectedEOF)

	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "put foo.json: unexpected EOF", err.Error())
}

func TestNotFound(t *testing.T) {
	err := NotFound("read", "index.template")

	assert.True(t, IsNotFound(err))
	assert.False(t, IsConfiguration(err))
	assert.True(t, strings.HasSuffix(err.Error(), "not found"))
}

func TestDataFormat_WrapsThroughFmt(t *testing.T) {
	inner := DataFormat("canonicalize", "list.json", errors.New("bad json"))
	wrapped := errors.Join(errors.New("update"), inner)

	assert.True(t, errors.Is(wrapped, ErrDataFormat))

	var e *Error
	if assert.True(t, errors.As(wrapped, &e)) {
		assert.Equal(t, "list.json", e.Key)
	}
}

func TestConfig(t *testing.T) {
	err := Config("validate", errors.New(Msg(MissingSetting, "--site-url", "SITE_URL")))

	assert.True(t, IsConfiguration(err))
	assert.Equal(t, "validate: --site-url or $SITE_URL is required", err.Error())
}
