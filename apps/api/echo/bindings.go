package echoapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mbokela/shule/core"
	"github.com/mbokela/shule/core/post"
)

const dateLayout = "2006-01-02"

// viewer identity headers, set by the trusted proxy upstream
const (
	viewerIDHeader    = "X-Viewer-Id"
	viewerNameHeader  = "X-Viewer-Name"
	viewerEmailHeader = "X-Viewer-Email"
)

// bindViewer reads the viewer identity from the request headers. All
// fields may be empty; an anonymous viewer simply owns nothing.
func bindViewer(ctx echo.Context) post.Viewer {
	h := ctx.Request().Header
	return post.Viewer{
		ID:    h.Get(viewerIDHeader),
		Name:  h.Get(viewerNameHeader),
		Email: h.Get(viewerEmailHeader),
	}
}

// dateParam parses an optional yyyy-mm-dd query param. A missing param
// yields the zero time.
func dateParam(ctx echo.Context, name string) (time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, core.NewValidationError(nil, core.FieldError{
			Field: name, Error: fmt.Sprintf("invalid date, expected format %s", dateLayout),
		})
	}
	return d, nil
}

// todayParam parses the optional "today" override; it defaults to the
// server clock.
func todayParam(ctx echo.Context) (time.Time, error) {
	today, err := dateParam(ctx, "today")
	if err != nil {
		return time.Time{}, err
	}
	if today.IsZero() {
		today = time.Now()
	}
	return today, nil
}

// intParam parses an optional positive integer query param, falling back
// to def when missing or malformed.
func intParam(ctx echo.Context, name string, def int) int {
	if raw := ctx.QueryParam(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
