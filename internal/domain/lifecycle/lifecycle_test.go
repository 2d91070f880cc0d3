package lifecycle

import (
	"testing"

	"adas_workorders/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestPriority_FollowsCanonicalOrder(t *testing.T) {
	for i := 1; i < len(entities.AllStatuses); i++ {
		prev, cur := entities.AllStatuses[i-1], entities.AllStatuses[i]
		assert.Less(t, Priority(prev), Priority(cur), "%s should rank below %s", prev, cur)
	}
	assert.Equal(t, Priority(entities.StatusNew), Priority("bogus"))
}

func TestAdvance_NeverRegresses(t *testing.T) {
	for _, current := range entities.AllStatuses {
		for _, incoming := range entities.AllStatuses {
			d := Advance(current, incoming, false, false)
			want := current
			if Priority(incoming) > Priority(current) {
				want = incoming
			}
			assert.Equal(t, want, d.To, "%s + %s", current, incoming)
			if Priority(incoming) < Priority(current) {
				assert.Equal(t, KindHeld, d.Kind, "%s + %s", current, incoming)
			}
		}
	}
}

func TestAdvance_CalibrationReport(t *testing.T) {
	t.Run("new becomes ready", func(t *testing.T) {
		d := Advance(entities.StatusNew, "", true, false)
		assert.Equal(t, entities.StatusReady, d.To)
		assert.Equal(t, KindAutoReady, d.Kind)
	})

	t.Run("no calibration flag", func(t *testing.T) {
		d := Advance(entities.StatusNew, "", true, true)
		assert.Equal(t, entities.StatusNoCalRequired, d.To)
		assert.Equal(t, KindAutoReady, d.Kind)
	})

	t.Run("scheduled stays scheduled", func(t *testing.T) {
		d := Advance(entities.StatusScheduled, "", true, false)
		assert.Equal(t, entities.StatusScheduled, d.To)
		assert.False(t, d.Changed())
	})

	t.Run("completed is untouched", func(t *testing.T) {
		d := Advance(entities.StatusCompleted, entities.StatusReady, true, false)
		assert.Equal(t, entities.StatusCompleted, d.To)
		assert.Equal(t, KindHeld, d.Kind)
	})

	t.Run("higher incoming status still wins", func(t *testing.T) {
		d := Advance(entities.StatusNew, entities.StatusScheduled, true, false)
		assert.Equal(t, entities.StatusScheduled, d.To)
		assert.Equal(t, KindAdvanced, d.Kind)
	})
}

func TestAdvance_UnknownCurrentTreatedAsNew(t *testing.T) {
	d := Advance("Awaiting Something", entities.StatusReady, false, false)
	assert.Equal(t, entities.StatusNew, d.From)
	assert.Equal(t, entities.StatusReady, d.To)
}

func TestOverride(t *testing.T) {
	d := Override(entities.StatusCompleted, entities.StatusReady)
	assert.Equal(t, entities.StatusReady, d.To)
	assert.Equal(t, KindOverride, d.Kind)

	d = Override(entities.StatusCompleted, "")
	assert.Equal(t, entities.StatusCompleted, d.To)
	assert.Equal(t, KindUnchanged, d.Kind)
}

func TestNormalize(t *testing.T) {
	cases := map[string]entities.Status{
		"Ready to Schedule": entities.StatusReady,
		"REVV received":     entities.StatusReady,
		"IN-PROGRESS":       entities.StatusInProgress,
		"On Site":           entities.StatusInProgress,
		"canceled":          entities.StatusCancelled,
		"No Cal Required":   entities.StatusNoCalRequired,
		"no_cal_required":   entities.StatusNoCalRequired,
		"Closed":            entities.StatusCompleted,
		"booked":            entities.StatusScheduled,
		"Reschedule":        entities.StatusRescheduled,
		"something unheard": entities.StatusNew,
		"":                  entities.StatusNew,
	}
	for raw, want := range cases {
		assert.Equal(t, want, Normalize(raw), "label %q", raw)
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range entities.AllStatuses {
		want := s == entities.StatusCancelled || s == entities.StatusCompleted
		assert.Equal(t, want, Terminal(s), string(s))
	}
}
