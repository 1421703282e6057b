package zoom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurface_AcquireRelease(t *testing.T) {
	var attached, detached int
	attach := func() DetachFunc {
		attached++
		return func() { detached++ }
	}

	var s Surface
	assert.False(t, s.Active())
	assert.False(t, s.SuppressNativeZoom())

	s.Acquire(attach)
	assert.True(t, s.Active())
	assert.True(t, s.SuppressNativeZoom())
	assert.Equal(t, 1, attached)
	assert.Equal(t, 0, detached)

	s.Release()
	assert.False(t, s.Active())
	assert.Equal(t, 1, detached)
}

func TestSurface_ReacquireTearsDownPreviousListeners(t *testing.T) {
	var attached, detached int
	attach := func() DetachFunc {
		attached++
		return func() { detached++ }
	}

	var s Surface
	s.Acquire(attach)
	s.Acquire(attach) // remount: old listener set goes first

	assert.Equal(t, 2, attached)
	assert.Equal(t, 1, detached)
	assert.True(t, s.Active())
}

func TestSurface_ReleaseIsIdempotent(t *testing.T) {
	var detached int
	var s Surface
	s.Acquire(func() DetachFunc {
		return func() { detached++ }
	})

	s.Release()
	s.Release()
	s.Release()
	assert.Equal(t, 1, detached)
}

func TestSurface_AcquireNilJustDetaches(t *testing.T) {
	var detached int
	var s Surface
	s.Acquire(func() DetachFunc {
		return func() { detached++ }
	})

	s.Acquire(nil)
	assert.Equal(t, 1, detached)
	assert.False(t, s.Active())
}
