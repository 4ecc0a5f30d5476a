package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := Error(EMISSING, "font %s not found", "Helvetica")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "font Helvetica not found", UserMessage(err))
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
	assert.Equal(t, "internal error", UserMessage(errors.New("plain")))
}

func TestWrapErrorKeepsCause(t *testing.T) {
	cause := errors.New("fc-list missing")
	err := WrapError(cause, EUNAVAILABLE, "font catalog %q not available", "fontconfig")
	assert.True(t, errors.Is(err, cause), "expected cause to be reachable")
	assert.Equal(t, EUNAVAILABLE, Code(err))
	outer := fmt.Errorf("query families: %w", err)
	assert.Equal(t, EUNAVAILABLE, Code(outer), "code must survive further wrapping")
	assert.Equal(t, `font catalog "fontconfig" not available`, UserMessage(outer))
}

func TestWrapNilError(t *testing.T) {
	err := ErrorWithCode(nil, EINVALID)
	assert.Error(t, err)
	assert.Equal(t, "invalid", UserMessage(err))
	err = WrapError(nil, EUNAVAILABLE, "catalog down")
	assert.Contains(t, err.Error(), "service unavailable")
}
