package musictag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorMatching(t *testing.T) {
	cause := errors.New("bad header")
	err := error(&ParseError{Path: "/x/y.mp3", Err: cause})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, cause)

	var pe *ParseError
	assert.ErrorAs(t, fmt.Errorf("load: %w", err), &pe)
	assert.Equal(t, "/x/y.mp3", pe.Path)
	assert.Contains(t, err.Error(), "/x/y.mp3")

	buffErr := error(&ParseError{Err: cause})
	assert.Contains(t, buffErr.Error(), "buffer")
}

func TestWriteErrorMatching(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&WriteError{Path: "/out.flac", Err: cause})

	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInvalidInput)

	var we *WriteError
	assert.ErrorAs(t, err, &we)
	assert.Equal(t, "/out.flac", we.Path)
}
