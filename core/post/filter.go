package post

import (
	"sort"
	"strings"
	"time"

	"github.com/mbokela/shule/core/calendar"
)

// OnDay returns the posts whose [StartAt, EndAt] range overlaps the given
// calendar day, inclusive at day granularity. A multi-day post appears on
// every day of its span. Input order is preserved; callers sort.
func OnDay(posts []Post, day time.Time) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if calendar.OverlapsDay(p.StartAt, p.EndAt, day) {
			out = append(out, p)
		}
	}
	return out
}

// Filter narrows posts by each dimension of the filter in a fixed order:
// scope, temporal bucket, type, author, free-text search. Later stages
// never resurrect posts dropped earlier. The result is always re-sorted
// by CreatedAt descending, whatever the input order.
func Filter(posts []Post, filter QueryFilter, viewer Viewer, today time.Time) []Post {
	today = calendar.StartOfDay(today)

	out := posts
	if filter.Scope == ScopeMine {
		out = keep(out, viewer.Owns)
	}

	switch filter.Bucket {
	case BucketToday:
		out = keep(out, overlapping(today))
	case BucketYesterday:
		out = keep(out, overlapping(calendar.AddDays(today, -1)))
	case BucketSinceWeek:
		from := calendar.AddDays(today, -7)
		out = keep(out, func(p Post) bool {
			return !calendar.StartOfDay(p.CreatedAt).Before(from)
		})
	case BucketPast:
		out = keep(out, func(p Post) bool {
			return calendar.StartOfDay(p.EffectiveEnd()).Before(today)
		})
	case BucketFuture:
		out = keep(out, func(p Post) bool {
			return calendar.StartOfDay(p.StartAt).After(today)
		})
	case BucketOnDate:
		if !filter.On.IsZero() {
			out = keep(out, overlapping(calendar.StartOfDay(filter.On)))
		}
	}

	if filter.Type != "" && filter.Type != "ALL" {
		out = keep(out, func(p Post) bool { return p.Type == filter.Type })
	}

	// expected to be disabled by the caller when scope is "mine"; kept safe here
	if filter.Author != "" {
		out = keep(out, func(p Post) bool { return p.AuthorName == filter.Author })
	}

	if q := strings.ToLower(strings.TrimSpace(filter.Search)); q != "" {
		out = keep(out, func(p Post) bool {
			hay := strings.ToLower(p.Content + " " + p.AuthorName + " " + p.AuthorEmail + " " + string(p.Type))
			return strings.Contains(hay, q)
		})
	}

	sorted := make([]Post, len(out))
	copy(sorted, out)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

func keep(posts []Post, pred func(Post) bool) []Post {
	var filtered []Post
	for _, p := range posts {
		if pred(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func overlapping(day time.Time) func(Post) bool {
	return func(p Post) bool {
		return calendar.OverlapsDay(p.StartAt, p.EndAt, day)
	}
}

// UniqueAuthors returns the distinct, trimmed author names found in
// posts, sorted alphabetically. Feeds the author filter dropdown.
func UniqueAuthors(posts []Post) []string {
	seen := make(map[string]struct{}, len(posts))
	var names []string
	for _, p := range posts {
		name := strings.TrimSpace(p.AuthorName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
