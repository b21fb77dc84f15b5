package obligation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func deadlineRec(id string, deadline time.Time) Record {
	return Record{ID: id, Name: "obligation " + id, Source: RegulationAIAct, Priority: PriorityHigh, Deadline: &deadline}
}

// TestTimelineMonotonicity verifies entries are non-decreasing by date.
func TestTimelineMonotonicity(t *testing.T) {
	now := date(2026, time.March, 1)
	entries := BuildTimeline(
		[]Record{
			deadlineRec("late", date(2027, time.August, 2)),
			deadlineRec("early", date(2025, time.February, 2)),
			deadlineRec("mid", date(2026, time.August, 2)),
		},
		[]Milestone{
			{Date: date(2026, time.August, 2), Event: "high-risk obligations apply"},
			{Date: date(2025, time.February, 2), Event: "prohibitions apply"},
		},
		now,
	)

	require.Len(t, entries, 5)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.Before(entries[i-1].Date),
			"entry %d precedes entry %d", i, i-1)
	}
}

// TestTimelineUrgencyBuckets checks each urgency band boundary.
func TestTimelineUrgencyBuckets(t *testing.T) {
	now := date(2026, time.March, 1)
	cases := []struct {
		name     string
		deadline time.Time
		want     Urgency
		days     int
	}{
		{"yesterday is overdue", now.AddDate(0, 0, -1), UrgencyOverdue, -1},
		{"today is urgent", now, UrgencyUrgent, 0},
		{"day 30 is urgent", now.AddDate(0, 0, 30), UrgencyUrgent, 30},
		{"day 31 is upcoming", now.AddDate(0, 0, 31), UrgencyUpcoming, 31},
		{"day 90 is upcoming", now.AddDate(0, 0, 90), UrgencyUpcoming, 90},
		{"day 91 is on track", now.AddDate(0, 0, 91), UrgencyOnTrack, 91},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries := BuildTimeline([]Record{deadlineRec("x", tc.deadline)}, nil, now)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.want, entries[0].Urgency)
			assert.Equal(t, tc.days, entries[0].DaysUntil)
		})
	}
}

// TestTimelineIgnoresTimeOfDay verifies date-only comparison: a deadline
// later today is 0 days away even when "now" is past its wall-clock time.
func TestTimelineIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2026, time.March, 1, 23, 50, 0, 0, time.UTC)
	deadline := time.Date(2026, time.March, 1, 0, 5, 0, 0, time.UTC)

	entries := BuildTimeline([]Record{deadlineRec("today", deadline)}, nil, now)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].DaysUntil)
	assert.Equal(t, UrgencyUrgent, entries[0].Urgency)
}

// TestTimelineSkipsRecordsWithoutDeadline verifies only dated obligations
// become timeline candidates.
func TestTimelineSkipsRecordsWithoutDeadline(t *testing.T) {
	now := date(2026, time.March, 1)
	undated := Record{ID: "nd", Name: "no deadline", Source: RegulationGDPR, Priority: PriorityMedium}

	entries := BuildTimeline([]Record{undated, deadlineRec("d", date(2026, time.June, 1))}, nil, now)
	require.Len(t, entries, 1)
	assert.Equal(t, "obligation d", entries[0].Event)
}

// TestTimelineIncludesMilestones verifies regulation-wide milestones join
// the timeline regardless of obligation deadlines.
func TestTimelineIncludesMilestones(t *testing.T) {
	now := date(2026, time.March, 1)
	entries := BuildTimeline(nil, []Milestone{
		{Date: date(2025, time.August, 2), Event: "GPAI rules apply", Impact: "providers of general-purpose models"},
	}, now)

	require.Len(t, entries, 1)
	assert.Equal(t, "GPAI rules apply", entries[0].Event)
	assert.Equal(t, UrgencyOverdue, entries[0].Urgency)
}
