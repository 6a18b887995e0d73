// Package icalsvc renders calendar windows as iCalendar feeds so posts
// can be subscribed to from external calendar clients.
package icalsvc

import (
	"fmt"

	ics "github.com/arran4/golang-ical"

	"github.com/mbokela/shule/core/calendar"
	"github.com/mbokela/shule/core/post"
)

// BuildCalendar serializes the posts overlapping the given window as an
// iCalendar document of all-day events. Headline posts never reach the
// calendar surface; the caller is expected to have excluded them.
func BuildCalendar(posts []post.Post, window calendar.Window, calName string) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(fmt.Sprintf("-//%s//FR", calName))
	cal.SetName(calName)

	for _, p := range overlapping(posts, window) {
		ev := cal.AddEvent(p.ID)
		ev.SetDtStampTime(p.CreatedAt)
		ev.SetSummary(eventSummary(p))
		if p.Content != "" {
			ev.SetDescription(p.Content)
		}
		ev.SetAllDayStartAt(calendar.StartOfDay(p.StartAt))
		// all-day DTEND is exclusive
		ev.SetAllDayEndAt(calendar.AddDays(calendar.StartOfDay(p.EffectiveEnd()), 1))
		ev.SetProperty(ics.ComponentPropertyCategories, string(p.Type))
	}
	return cal.Serialize()
}

func overlapping(posts []post.Post, window calendar.Window) []post.Post {
	var out []post.Post
	for _, p := range posts {
		if !calendar.StartOfDay(p.StartAt).After(calendar.EndOfDay(window.End)) &&
			!calendar.EndOfDay(p.EffectiveEnd()).Before(calendar.StartOfDay(window.Start)) {
			out = append(out, p)
		}
	}
	return out
}

func eventSummary(p post.Post) string {
	if p.Content == "" {
		return p.Type.Label()
	}
	summary := p.Content
	if runes := []rune(summary); len(runes) > 80 {
		summary = string(runes[:80])
	}
	return fmt.Sprintf("[%s] %s", p.Type.Label(), summary)
}
