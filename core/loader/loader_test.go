package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  int
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded++
	return f.err
}

// TestManager_LoadAll tests that only enabled features are loaded.
func TestManager_LoadAll(t *testing.T) {
	on := &fakeFeature{name: "on", enabled: true}
	off := &fakeFeature{name: "off"}

	m := NewManager(zap.NewNop())
	m.Register(on)
	m.Register(off)

	assert.NoError(t, m.LoadAll(fiber.New()))
	assert.Equal(t, 1, on.loaded)
	assert.Equal(t, 0, off.loaded)
	assert.Len(t, m.Features(), 2)
}

// TestManager_LoadAll_Error tests that a failing feature stops loading.
func TestManager_LoadAll_Error(t *testing.T) {
	broken := &fakeFeature{name: "broken", enabled: true, err: errors.New("no routes")}
	after := &fakeFeature{name: "after", enabled: true}

	m := NewManager(nil)
	m.Register(broken)
	m.Register(after)

	err := m.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "load feature broken")
	assert.Equal(t, 0, after.loaded)
}

// TestManager_LoadAll_Duplicate tests that a name can only be registered once.
func TestManager_LoadAll_Duplicate(t *testing.T) {
	m := NewManager(nil)
	m.Register(&fakeFeature{name: "same", enabled: true})
	m.Register(&fakeFeature{name: "same", enabled: true})

	assert.Error(t, m.LoadAll(fiber.New()))
}
