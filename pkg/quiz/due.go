package quiz

import (
	"context"
	"time"

	"github.com/aretw0/jurnalo/pkg/core"
)

const day = 24 * time.Hour

// IsDue reports whether a choice should be highlighted because its reminder
// interval has elapsed since it was last recorded. Choices without an interval
// are never due; choices with one that were never recorded always are.
func IsDue(ctx context.Context, history core.ChoiceHistory, choice core.Choice, now time.Time) (bool, error) {
	if choice.ReminderDays == nil {
		return false, nil
	}

	latest, err := history.LatestChoiceEntry(ctx, choice.ID)
	if err != nil {
		return false, err
	}
	if latest == nil {
		return true, nil
	}

	elapsed := int(now.Sub(*latest) / day)
	return elapsed >= *choice.ReminderDays, nil
}
