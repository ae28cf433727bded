package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestDuplicateComponent(t *testing.T) {
	err := NewDuplicateComponent("payment.processor")
	require.Error(t, err)

	assert.True(t, Is(err, ErrDuplicateComponent))
	assert.Contains(t, err.Error(), "payment.processor")

	var dup *DuplicateComponentError
	require.True(t, As(err, &dup))
	assert.Equal(t, "payment.processor", dup.ID)
}

func TestPathCollision(t *testing.T) {
	err := NewPathCollision("internal/auth/service.go", "auth.service")
	require.Error(t, err)

	assert.True(t, Is(err, ErrPathCollision))
	assert.False(t, Is(err, ErrDuplicateComponent))

	var pc *PathCollisionError
	require.True(t, As(err, &pc))
	assert.Equal(t, "internal/auth/service.go", pc.Path)
	assert.Equal(t, "auth.service", pc.ComponentID)
}

func TestPathCollisionSurvivesWrapping(t *testing.T) {
	err := Wrap(NewPathCollision("lib/auth.rb", "auth.service"), "writing ruby corpus")
	assert.True(t, Is(err, ErrPathCollision))
}
