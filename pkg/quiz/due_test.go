package quiz_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jurnalo/pkg/core"
	"github.com/aretw0/jurnalo/pkg/quiz"
)

type historyFunc func(ctx context.Context, choiceID int64) (*time.Time, error)

func (f historyFunc) LatestChoiceEntry(ctx context.Context, choiceID int64) (*time.Time, error) {
	return f(ctx, choiceID)
}

func ptr[T any](v T) *T { return &v }

func TestIsDue(t *testing.T) {
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	at := func(d time.Duration) historyFunc {
		return func(context.Context, int64) (*time.Time, error) {
			ts := now.Add(-d)
			return &ts, nil
		}
	}
	never := historyFunc(func(context.Context, int64) (*time.Time, error) { return nil, nil })

	tests := []struct {
		name    string
		choice  core.Choice
		history historyFunc
		want    bool
	}{
		{"interval and no history", core.Choice{ID: 1, ReminderDays: ptr(3)}, never, true},
		{"interval elapsed exactly", core.Choice{ID: 1, ReminderDays: ptr(3)}, at(72 * time.Hour), true},
		{"interval elapsed long ago", core.Choice{ID: 1, ReminderDays: ptr(3)}, at(30 * 24 * time.Hour), true},
		{"partial days do not count", core.Choice{ID: 1, ReminderDays: ptr(3)}, at(71 * time.Hour), false},
		{"used today", core.Choice{ID: 1, ReminderDays: ptr(1)}, at(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := quiz.IsDue(context.Background(), tt.history, tt.choice, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsDue_NoIntervalSkipsStore(t *testing.T) {
	called := false
	history := historyFunc(func(context.Context, int64) (*time.Time, error) {
		called = true
		return nil, nil
	})

	got, err := quiz.IsDue(context.Background(), history, core.Choice{ID: 9}, time.Now())
	require.NoError(t, err)
	assert.False(t, got)
	assert.False(t, called, "history must not be consulted without an interval")
}

func TestIsDue_StoreError(t *testing.T) {
	boom := errors.New("disk on fire")
	history := historyFunc(func(context.Context, int64) (*time.Time, error) { return nil, boom })

	_, err := quiz.IsDue(context.Background(), history, core.Choice{ID: 2, ReminderDays: ptr(1)}, time.Now())
	assert.ErrorIs(t, err, boom)
}
