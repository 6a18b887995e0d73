package echoapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mbokela/shule/core"
	"github.com/mbokela/shule/core/calendar"
	"github.com/mbokela/shule/core/post"
	icalsvc "github.com/mbokela/shule/services/ical"
	"github.com/mbokela/shule/view"
)

type postApi struct {
	svc      *post.Service
	conf     *core.Config
	validate *validator.Validate
}

func registerPostAPI(g *echo.Group, svc *post.Service, conf *core.Config, validate *validator.Validate) {
	api := postApi{svc: svc, conf: conf, validate: validate}

	pg := g.Group("/posts")
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.DELETE("", api.destroyMultiple)
	pg.GET("/authors", api.queryAuthors)
	pg.GET("/stats", api.stats)
	pg.GET("/calendar", api.calendar)
	pg.GET("/calendar.ics", api.calendarICS)
	pg.GET("/:id", api.retrieve)
	pg.PUT("/:id", api.update)
	pg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *postApi) query(ctx echo.Context) error {
	filter := new(post.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []post.Post{})
	}
	on, err := dateParam(ctx, "on")
	if err != nil {
		return err
	}
	filter.On = on

	today, err := todayParam(ctx)
	if err != nil {
		return err
	}

	posts, err := api.svc.Filter(*filter, bindViewer(ctx), today)
	if err != nil {
		return errors.Wrap(err, "filtering posts")
	}
	if posts == nil {
		posts = []post.Post{}
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *postApi) create(ctx echo.Context) error {
	var data post.NewPost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPost")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Create(data, bindViewer(ctx))
	if err != nil {
		return errors.Wrap(err, "creating post")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *postApi) retrieve(ctx echo.Context) error {
	p, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == post.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting post")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *postApi) update(ctx echo.Context) error {
	var data post.UpdatePost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePost")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == post.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating post")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *postApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting post")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *postApi) destroyMultiple(ctx echo.Context) error {
	raw := ctx.QueryParam("ids")
	if raw == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "ids", Error: "this field is required"})
	}
	if err := api.svc.Delete(strings.Split(raw, ",")...); err != nil {
		return errors.Wrap(err, "deleting posts")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *postApi) queryAuthors(ctx echo.Context) error {
	authors, err := api.svc.Authors()
	if err != nil {
		return errors.Wrap(err, "querying authors")
	}
	if authors == nil {
		authors = []string{}
	}
	return ctx.JSON(http.StatusOK, authors)
}

type statsResponse struct {
	post.Stats
	TypeChart    []view.ChartRow      `json:"type_chart"`
	NextUpcoming []view.UpcomingEntry `json:"next_upcoming"`
}

func (api *postApi) stats(ctx echo.Context) error {
	today, err := todayParam(ctx)
	if err != nil {
		return err
	}
	limit := intParam(ctx, "limit", api.conf.Calendar.UpcomingLimit)

	stats, err := api.svc.Stats(today, limit)
	if err != nil {
		return errors.Wrap(err, "aggregating posts")
	}
	return ctx.JSON(http.StatusOK, statsResponse{
		Stats:        stats,
		TypeChart:    view.TypeChartRows(stats),
		NextUpcoming: view.UpcomingEntries(stats.NextUpcoming),
	})
}

type (
	calendarDay struct {
		Date    time.Time   `json:"date"`
		Label   string      `json:"label"`
		InMonth bool        `json:"in_month"`
		Posts   []post.Post `json:"posts"`
	}

	calendarResponse struct {
		Mode      calendar.Mode   `json:"mode"`
		ModeLabel string          `json:"mode_label"`
		Recap     string          `json:"recap"`
		Window    calendar.Window `json:"window"`
		Days      []calendarDay   `json:"days"`
	}
)

// calendarWindow resolves the mode and cursor params into the display
// window and the grid to fill. In month mode the grid covers full
// Monday-start weeks around the month.
func (api *postApi) calendarWindow(ctx echo.Context) (calendar.Window, calendar.Window, error) {
	mode := calendar.Mode(ctx.QueryParam("mode"))
	if !mode.Valid() {
		mode = calendar.ModeDay
	}

	cursor, err := dateParam(ctx, "cursor")
	if err != nil {
		return calendar.Window{}, calendar.Window{}, err
	}
	if cursor.IsZero() {
		cursor = time.Now()
	}

	window := calendar.ComputeWindow(mode, cursor)
	grid := window
	if mode == calendar.ModeMonth {
		grid = calendar.MonthGrid(cursor)
	}
	return window, grid, nil
}

func (api *postApi) calendar(ctx echo.Context) error {
	window, grid, err := api.calendarWindow(ctx)
	if err != nil {
		return err
	}

	posts, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}
	posts = withoutHeadlines(posts)

	days := make([]calendarDay, 0, len(grid.Days()))
	for _, day := range grid.Days() {
		onDay := post.OnDay(posts, day)
		if onDay == nil {
			onDay = []post.Post{}
		}
		days = append(days, calendarDay{
			Date:    day,
			Label:   view.DayLabel(day, window.Mode),
			InMonth: day.Month() == window.Start.Month(),
			Posts:   onDay,
		})
	}

	return ctx.JSON(http.StatusOK, calendarResponse{
		Mode:      window.Mode,
		ModeLabel: view.ModeLabel(window.Mode),
		Recap:     view.PeriodRecap(window),
		Window:    window,
		Days:      days,
	})
}

func (api *postApi) calendarICS(ctx echo.Context) error {
	_, grid, err := api.calendarWindow(ctx)
	if err != nil {
		return err
	}

	posts, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}

	feed := icalsvc.BuildCalendar(withoutHeadlines(posts), grid, api.conf.AppName)
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// withoutHeadlines drops headline posts; they belong to the news banner,
// never to the calendar surface.
func withoutHeadlines(posts []post.Post) []post.Post {
	var out []post.Post
	for _, p := range posts {
		if p.Type != post.TypeALaUne {
			out = append(out, p)
		}
	}
	return out
}
