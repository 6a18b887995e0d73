package post

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mbokela/shule/core/calendar"
)

// TrailingWeeks is the fixed size of the weekly rollup window: the 8
// Monday-start weeks ending at the current one.
const TrailingWeeks = 8

// UnknownAuthor is the author bucket for posts without a display name.
const UnknownAuthor = "Inconnu"

type (
	WeekCount struct {
		WeekStart time.Time `json:"week_start"`
		Label     string    `json:"label"` // "S" + zero-padded ISO week number
		Count     int       `json:"count"`
	}

	MonthCount struct {
		Month time.Month `json:"month"`
		Count int        `json:"count"`
	}

	AuthorCount struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	// WeekTopType is the most frequent post type of one trailing week.
	// Type is empty when the week has no posts.
	WeekTopType struct {
		Label string `json:"label"`
		Type  Type   `json:"type,omitempty"`
		Count int    `json:"count"`
	}

	// Stats is the full dashboard rollup over one snapshot of posts.
	// Ephemeral; recomputed from scratch on every input change.
	Stats struct {
		Total       int `json:"total"`
		ActiveToday int `json:"active_today"`
		Upcoming    int `json:"upcoming"`
		Past        int `json:"past"`
		ThisWeek    int `json:"this_week"`
		Last7Days   int `json:"last_7_days"`

		TypeCounts      map[Type]int  `json:"type_counts"`
		WeeklyCounts    []WeekCount   `json:"weekly_counts"`  // trailing weeks, oldest first
		MonthlyCounts   []MonthCount  `json:"monthly_counts"` // current year, Jan..Dec
		TopTypeByWeek   []WeekTopType `json:"top_type_by_week"`
		AuthorBreakdown []AuthorCount `json:"author_breakdown"` // sorted by count descending
		NextUpcoming    []Post        `json:"next_upcoming"`    // by StartAt ascending, truncated
	}
)

// Aggregate rolls a snapshot of posts up into the dashboard statistics.
// today is the explicit reference date (never read from the clock here);
// upcomingLimit caps the NextUpcoming ranking.
func Aggregate(posts []Post, today time.Time, upcomingLimit int) Stats {
	today = calendar.StartOfDay(today)
	weekStart := calendar.StartOfWeekMonday(today)
	weekEnd := calendar.AddDays(weekStart, 6)
	sevenDaysAgo := calendar.AddDays(today, -7)
	currentYear := today.Year()

	// index weeks by their date string so posts carrying a different
	// location (UTC timestamps from the store) still land in the right bucket
	weekStarts := make([]time.Time, TrailingWeeks)
	weekIndex := make(map[string]int, TrailingWeeks)
	for i := range weekStarts {
		ws := calendar.AddDays(weekStart, -7*(TrailingWeeks-1-i))
		weekStarts[i] = ws
		weekIndex[dayKey(ws)] = i
	}

	stats := Stats{
		Total:         len(posts),
		TypeCounts:    make(map[Type]int, len(Types)),
		WeeklyCounts:  make([]WeekCount, TrailingWeeks),
		MonthlyCounts: make([]MonthCount, 12),
	}
	for _, t := range Types {
		stats.TypeCounts[t] = 0
	}
	for i, ws := range weekStarts {
		stats.WeeklyCounts[i] = WeekCount{WeekStart: ws, Label: weekLabel(ws)}
	}
	for i := range stats.MonthlyCounts {
		stats.MonthlyCounts[i].Month = time.Month(i + 1)
	}

	weekTypeCounts := make([]map[Type]int, TrailingWeeks)
	for i := range weekTypeCounts {
		weekTypeCounts[i] = make(map[Type]int, len(Types))
	}

	authorCounts := make(map[string]int)
	var upcoming []Post

	for _, p := range posts {
		start := calendar.StartOfDay(p.StartAt)
		end := calendar.StartOfDay(p.EffectiveEnd())
		created := calendar.StartOfDay(p.CreatedAt)

		if !start.After(today) && !end.Before(today) {
			stats.ActiveToday++
		}
		if start.After(today) {
			stats.Upcoming++
		}
		if end.Before(today) {
			stats.Past++
		}
		if !start.After(weekEnd) && !end.Before(weekStart) {
			stats.ThisWeek++
		}
		if !created.Before(sevenDaysAgo) {
			stats.Last7Days++
		}

		stats.TypeCounts[p.Type]++

		name := strings.TrimSpace(p.AuthorName)
		if name == "" {
			name = UnknownAuthor
		}
		authorCounts[name]++

		if created.Year() == currentYear {
			stats.MonthlyCounts[created.Month()-1].Count++
		}

		if idx, ok := weekIndex[dayKey(calendar.StartOfWeekMonday(created))]; ok {
			stats.WeeklyCounts[idx].Count++
			weekTypeCounts[idx][p.Type]++
		}

		if !start.Before(today) {
			upcoming = append(upcoming, p)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartAt.Before(upcoming[j].StartAt)
	})
	if upcomingLimit < 0 {
		upcomingLimit = 0
	}
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	stats.NextUpcoming = upcoming

	stats.AuthorBreakdown = make([]AuthorCount, 0, len(authorCounts))
	for name, count := range authorCounts {
		stats.AuthorBreakdown = append(stats.AuthorBreakdown, AuthorCount{Name: name, Count: count})
	}
	sort.Slice(stats.AuthorBreakdown, func(i, j int) bool {
		a, b := stats.AuthorBreakdown[i], stats.AuthorBreakdown[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})

	stats.TopTypeByWeek = make([]WeekTopType, TrailingWeeks)
	for i := range weekStarts {
		top := WeekTopType{Label: stats.WeeklyCounts[i].Label}
		for _, t := range Types { // declaration order breaks ties
			if count := weekTypeCounts[i][t]; count > top.Count {
				top.Type = t
				top.Count = count
			}
		}
		stats.TopTypeByWeek[i] = top
	}

	return stats
}

// weekLabel formats a week start as "S01".."S53" from its ISO week number.
func weekLabel(weekStart time.Time) string {
	_, week := weekStart.ISOWeek()
	return fmt.Sprintf("S%02d", week)
}

func dayKey(d time.Time) string {
	return d.Format("2006-01-02")
}
