// Package view maps domain values to the French display strings and
// chart rows the dashboard renders. No business logic lives here.
package view

import (
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/fr"

	"github.com/mbokela/shule/core/calendar"
	"github.com/mbokela/shule/core/post"
)

// excerptLen caps upcoming post titles.
const excerptLen = 60

// NoContent is the display fallback for posts without content.
const NoContent = "Sans contenu"

var locale locales.Translator = fr.New()

var modeLabels = map[calendar.Mode]string{
	calendar.ModeDay:      "Aujourd'hui",
	calendar.ModeThreeDay: "3 jours",
	calendar.ModeWeek:     "1 semaine",
	calendar.ModeMonth:    "1 mois",
}

// ModeLabel returns the French label of a navigation mode.
func ModeLabel(mode calendar.Mode) string {
	if label, ok := modeLabels[mode]; ok {
		return label
	}
	return string(mode)
}

// FormatShort renders a date as dd/mm/yyyy.
func FormatShort(d time.Time) string {
	return locale.FmtDateShort(d)
}

// DayLabel renders a grid day header for the given mode:
// wide modes get the full weekday, the month grid just dd/mm.
func DayLabel(day time.Time, mode calendar.Mode) string {
	switch mode {
	case calendar.ModeDay, calendar.ModeThreeDay:
		return capitalize(fmt.Sprintf("%s %02d %s",
			locale.WeekdayWide(day.Weekday()), day.Day(), locale.MonthAbbreviated(day.Month())))
	case calendar.ModeWeek:
		return capitalize(fmt.Sprintf("%s %d", locale.WeekdayWide(day.Weekday()), day.Day()))
	}
	return fmt.Sprintf("%02d/%02d", day.Day(), int(day.Month()))
}

// PeriodRecap renders the window summary shown between the navigation
// arrows: "Mai 2024" in month mode, "du 06/05/2024 au 12/05/2024" otherwise.
func PeriodRecap(w calendar.Window) string {
	if w.Mode == calendar.ModeMonth {
		return capitalize(fmt.Sprintf("%s %d", locale.MonthWide(w.Start.Month()), w.Start.Year()))
	}
	return fmt.Sprintf("du %s au %s", FormatShort(w.Start), FormatShort(w.End))
}

// MonthLabel renders a capitalized wide month name.
func MonthLabel(m time.Month) string {
	return capitalize(locale.MonthWide(m))
}

// Truncate cuts s to at most n runes, appending an ellipsis when
// something was dropped.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

// ChartRow is one slice of the type distribution chart.
type ChartRow struct {
	Label   string  `json:"label"`
	Type    post.Type `json:"type"`
	Color   string  `json:"color"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TypeChartRows projects the type counters into chart rows, one per
// declared type, in declaration order.
func TypeChartRows(stats post.Stats) []ChartRow {
	rows := make([]ChartRow, 0, len(post.Types))
	for _, typ := range post.Types {
		count := stats.TypeCounts[typ]
		row := ChartRow{Label: typ.Label(), Type: typ, Color: typ.Color(), Count: count}
		if stats.Total > 0 {
			row.Percent = float64(count) / float64(stats.Total) * 100
		}
		rows = append(rows, row)
	}
	return rows
}

// UpcomingEntry is one upcoming post reduced to its display tuple.
type UpcomingEntry struct {
	Title string    `json:"title"`
	Date  string    `json:"date"`
	Type  post.Type `json:"type"`
}

// UpcomingEntries projects upcoming posts into display tuples: a
// 60-character excerpt of the content and a short French date.
func UpcomingEntries(posts []post.Post) []UpcomingEntry {
	entries := make([]UpcomingEntry, 0, len(posts))
	for _, p := range posts {
		title := p.Content
		if runes := []rune(title); len(runes) > excerptLen {
			title = string(runes[:excerptLen])
		}
		if title == "" {
			title = NoContent
		}
		entries = append(entries, UpcomingEntry{
			Title: title,
			Date:  FormatShort(p.StartAt),
			Type:  p.Type,
		})
	}
	return entries
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
