package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engerr "github.com/delveteam/delve/internal/errors"
)

func TestErrorMessage(t *testing.T) {
	err := engerr.NotFound("dungeon not found")
	assert.Equal(t, "dungeon not found", err.Error())

	wrapped := engerr.Wrap(stderrors.New("dial tcp: refused"), "loading dungeon")
	assert.Equal(t, "loading dungeon: dial tcp: refused", wrapped.Error())
}

func TestWrapPreservesCode(t *testing.T) {
	inner := engerr.NotFoundf("dungeon %s not found", "d-1")
	wrapped := engerr.Wrap(inner, "executing action")

	assert.True(t, engerr.IsNotFound(wrapped))
	assert.ErrorIs(t, wrapped, inner)
}

func TestWrapForeignError(t *testing.T) {
	wrapped := engerr.Wrap(fmt.Errorf("kaboom"), "rolling dice")

	assert.Equal(t, engerr.CodeUnknown, engerr.GetCode(wrapped))
	assert.False(t, engerr.IsNotFound(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, engerr.Wrap(nil, "nothing happened"))
	assert.Nil(t, engerr.Wrapf(nil, "nothing %s", "happened"))
}

func TestWithMeta(t *testing.T) {
	err := engerr.Precondition("action not legal").
		WithMeta("room_id", "room-3").
		WithMeta("room_type", "trap")

	assert.Equal(t, "room-3", err.Meta["room_id"])
	assert.Equal(t, "trap", err.Meta["room_type"])
}

func TestWrapCopiesMeta(t *testing.T) {
	inner := engerr.Precondition("bad state").WithMeta("room_id", "room-1")
	wrapped := engerr.Wrap(inner, "outer")
	wrapped.WithMeta("room_id", "room-2")

	assert.Equal(t, "room-1", inner.Meta["room_id"])
	assert.Equal(t, "room-2", wrapped.Meta["room_id"])
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, engerr.IsInvalidArgument(engerr.InvalidArgument("bad input")))
	assert.True(t, engerr.IsNotFound(engerr.NotFound("missing")))
	assert.True(t, engerr.IsPrecondition(engerr.Precondition("wrong state")))
	assert.True(t, engerr.IsAborted(engerr.Aborted("round cap reached")))

	assert.False(t, engerr.IsAborted(engerr.NotFound("missing")))
	assert.False(t, engerr.IsNotFound(stderrors.New("plain")))
	assert.False(t, engerr.IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, engerr.CodeAlreadyExists, engerr.GetCode(engerr.AlreadyExists("dup")))
	assert.Equal(t, engerr.CodeInternal, engerr.GetCode(engerr.Internalf("boom %d", 7)))
	assert.Equal(t, engerr.CodeUnknown, engerr.GetCode(stderrors.New("plain")))
}

func TestAbortedCarriesThroughFmtWrap(t *testing.T) {
	inner := engerr.Aborted("combat exceeded round cap")
	outer := fmt.Errorf("resolving encounter: %w", inner)

	require.True(t, engerr.IsAborted(outer))
	assert.Equal(t, engerr.CodeAborted, engerr.GetCode(outer))
}
