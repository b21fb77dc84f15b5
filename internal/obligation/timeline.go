package obligation

import (
	"fmt"
	"sort"
	"time"
)

// Urgency buckets a timeline entry by days remaining relative to the
// evaluation time.
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"  // daysUntil < 0
	UrgencyUrgent   Urgency = "urgent"   // 0..30
	UrgencyUpcoming Urgency = "upcoming" // 31..90
	UrgencyOnTrack  Urgency = "on_track" // > 90
)

// TimelineEntry is one dated compliance event.
type TimelineEntry struct {
	Date      time.Time `json:"date"`
	Event     string    `json:"event"`
	Impact    string    `json:"impact,omitempty"`
	DaysUntil int       `json:"days_until"`
	Urgency   Urgency   `json:"urgency"`
}

// BuildTimeline derives the chronological compliance timeline from every
// obligation carrying a deadline plus the regulation-wide milestones.
//
// daysUntil uses date-only comparison: time-of-day is discarded on both
// sides, so an obligation due later today counts as 0 days away, not -1.
// The caller supplies now per invocation; nothing is cached across calls.
func BuildTimeline(records []Record, milestones []Milestone, now time.Time) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(records)+len(milestones))

	for _, m := range milestones {
		entries = append(entries, newEntry(m.Date, m.Event, m.Impact, now))
	}
	for _, r := range records {
		if r.Deadline == nil {
			continue
		}
		impact := fmt.Sprintf("%s priority, %s", r.Priority, r.Source)
		entries = append(entries, newEntry(*r.Deadline, r.Name, impact, now))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries
}

func newEntry(date time.Time, event, impact string, now time.Time) TimelineEntry {
	days := daysBetween(now, date)
	return TimelineEntry{
		Date:      truncateToDate(date),
		Event:     event,
		Impact:    impact,
		DaysUntil: days,
		Urgency:   urgencyFor(days),
	}
}

func urgencyFor(daysUntil int) Urgency {
	switch {
	case daysUntil < 0:
		return UrgencyOverdue
	case daysUntil <= 30:
		return UrgencyUrgent
	case daysUntil <= 90:
		return UrgencyUpcoming
	default:
		return UrgencyOnTrack
	}
}

// daysBetween counts whole calendar days from now to target, ignoring
// time-of-day on both sides.
func daysBetween(now, target time.Time) int {
	from := truncateToDate(now)
	to := truncateToDate(target)
	return int(to.Sub(from).Hours() / 24)
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
