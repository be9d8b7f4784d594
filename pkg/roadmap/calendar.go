package roadmap

import (
	"regexp"
	"strconv"
	"time"
)

// dayNumberRe finds the first integer anywhere in a free-text day range.
var dayNumberRe = regexp.MustCompile(`\d+`)

// anchorDay extracts the project anchor day from strings like "Days 3-5" or
// "Day 10". ok is false when the text contains no digits.
func anchorDay(dayRange string) (int, bool) {
	m := dayNumberRe.FindString(dayRange)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// effectiveStart is the record's start date, falling back to the creation
// timestamp's date when no start date was stored.
func effectiveStart(rec Record) time.Time {
	base := rec.StartDate
	if base.IsZero() {
		base = rec.CreatedAt
	}
	return time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthEvents projects every plan of the given records onto calendar dates
// and returns the events falling in the queried month and year. Day N of a
// plan lands on start_date + (N-1) days. The projection is pure and
// deterministic: identical input produces identical output, nothing is
// cached or persisted.
func MonthEvents(records []Record, month time.Month, year int) []CalendarEvent {
	events := []CalendarEvent{}
	for _, rec := range records {
		start := effectiveStart(rec)
		for _, plan := range rec.Roadmaps {
			for _, day := range plan.DailyPlan {
				date := start.AddDate(0, 0, day.Day-1)
				if date.Month() != month || date.Year() != year {
					continue
				}
				completed := rec.Progress.Completed(plan.TechStack, day.Day)
				events = append(events, CalendarEvent{
					RoadmapID:      rec.ID,
					TechStack:      plan.TechStack,
					Day:            date.Day(),
					RoadmapDay:     day.Day,
					Date:           date.Format(time.DateOnly),
					Title:          day.Title,
					Type:           EventTask,
					Completed:      &completed,
					EstimatedHours: day.EstimatedHours,
				})
			}
			for _, project := range plan.Projects {
				// A malformed day range skips just this project.
				anchor, ok := anchorDay(project.DayRange)
				if !ok {
					continue
				}
				date := start.AddDate(0, 0, anchor-1)
				if date.Month() != month || date.Year() != year {
					continue
				}
				events = append(events, CalendarEvent{
					RoadmapID:      rec.ID,
					TechStack:      plan.TechStack,
					Day:            date.Day(),
					Date:           date.Format(time.DateOnly),
					Title:          project.Title,
					Type:           EventProject,
					DayRange:       project.DayRange,
					EstimatedHours: project.EstimatedHours,
				})
			}
		}
	}
	return events
}
