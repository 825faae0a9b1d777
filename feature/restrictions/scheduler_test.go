package restrictions_test

import (
	"context"
	"testing"

	"loot-restrictions/feature/restrictions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewScheduler(t *testing.T) {
	svc, _ := setupService(t, testConfig())

	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{"Daily", "0 4 * * *", false},
		{"Weekdays", "30 6 * * 1-5", false},
		{"Empty", "  ", true},
		{"Seconds", "0 0 4 * * *", true},
		{"Garbage", "every morning", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := restrictions.NewScheduler(svc, tt.expr, 0, zap.NewNop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

// TestScheduler_Tick tests that a tick runs a committed reconciliation.
func TestScheduler_Tick(t *testing.T) {
	svc, _ := setupService(t, testConfig())
	s, err := restrictions.NewScheduler(svc, "0 4 * * *", 0, zap.NewNop())
	require.NoError(t, err)

	s.Tick()

	stored, err := svc.Restrictions(context.Background(), strengthNeck)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

// TestScheduler_StartStop tests that the scheduler shuts down cleanly.
func TestScheduler_StartStop(t *testing.T) {
	svc, _ := setupService(t, testConfig())
	s, err := restrictions.NewScheduler(svc, "0 4 * * *", 0, zap.NewNop())
	require.NoError(t, err)

	s.Start()
	ctx := s.Stop()
	<-ctx.Done()
}
