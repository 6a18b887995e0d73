package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mbokela/shule/core/post"
	"github.com/mbokela/shule/tests"
	"github.com/mbokela/shule/view"
)

// date builds a local midnight, matching how date query params are parsed.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

var (
	alice = post.Viewer{ID: "u1", Name: "Alice", Email: "alice@shule.fr"}
	bob   = post.Viewer{ID: "u2", Name: "Bob", Email: "bob@shule.fr"}
)

func Test_postApi_create(t *testing.T) {
	resetDB(t)

	// valid
	body := marchallObj(t, post.NewPost{
		Content: "Réunion parents d'élèves",
		Type:    post.TypeEvent,
		StartAt: date(2024, time.May, 6),
		EndAt:   date(2024, time.May, 7),
	})
	req, rec := newViewerRequest(http.MethodPost, "/v1/posts", alice, body)
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var p post.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	if p.ID == "" {
		t.Error("failed! ID not set")
	}
	if p.AuthorID != alice.ID || p.AuthorName != alice.Name || p.AuthorEmail != alice.Email {
		t.Errorf("failed! author = %v %v %v; want viewer identity", p.AuthorID, p.AuthorName, p.AuthorEmail)
	}
	if p.Type != post.TypeEvent {
		t.Errorf("failed! type = %v; want %v", p.Type, post.TypeEvent)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("failed! timestamps not stamped")
	}

	tests := []httpTest{
		{
			name:     "missing content fails",
			body:     marchallObj(t, post.NewPost{Type: post.TypeInfo, StartAt: date(2024, time.May, 6)}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"content": "this field is required"}),
		},
		{
			name:     "unknown type fails",
			body:     marchallObj(t, map[string]interface{}{"content": "Fête", "type": "PARTY", "start_at": date(2024, time.May, 6)}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"type": "invalid post type"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newViewerRequest(http.MethodPost, "/v1/posts", alice, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_postApi_query(t *testing.T) {
	resetDB(t)

	now := time.Now().UTC()
	p1 := testutil.CreatePost(t, postRepo, "Réunion parents", post.TypeEvent,
		date(2024, time.May, 6), date(2024, time.May, 7), alice, now.Add(-2*time.Hour))
	p2 := testutil.CreatePost(t, postRepo, "Absence Mme Dupont", post.TypeAbsence,
		date(2024, time.May, 10), time.Time{}, alice, now.Add(-time.Hour))
	p3 := testutil.CreatePost(t, postRepo, "Info cantine", post.TypeInfo,
		date(2024, time.April, 1), date(2024, time.April, 2), bob, now)

	empty := marchallList(t, []interface{}{}...)

	tests := []httpTest{
		{
			name: "no filter returns everything", path: "/v1/posts?today=2024-05-06",
			wantCode: http.StatusOK, wantData: marchallList(t, p3, p2, p1),
		},
		{
			name: "type", path: "/v1/posts?today=2024-05-06&type=INFO",
			wantCode: http.StatusOK, wantData: marchallList(t, p3),
		},
		{
			name: "author", path: "/v1/posts?today=2024-05-06&author=Bob",
			wantCode: http.StatusOK, wantData: marchallList(t, p3),
		},
		{
			name: "search matches content", path: "/v1/posts?today=2024-05-06&search=cantine",
			wantCode: http.StatusOK, wantData: marchallList(t, p3),
		},
		{
			name: "mine scopes to the viewer", path: "/v1/posts?today=2024-05-06&scope=MINE",
			viewer:   bob,
			wantCode: http.StatusOK, wantData: marchallList(t, p3),
		},
		{
			name: "bucket today", path: "/v1/posts?today=2024-05-06&bucket=TODAY",
			wantCode: http.StatusOK, wantData: marchallList(t, p1),
		},
		{
			name: "bucket future", path: "/v1/posts?today=2024-05-06&bucket=FUTURE",
			wantCode: http.StatusOK, wantData: marchallList(t, p2),
		},
		{
			name: "bucket past", path: "/v1/posts?today=2024-05-06&bucket=PAST",
			wantCode: http.StatusOK, wantData: marchallList(t, p3),
		},
		{
			name: "on a given date", path: "/v1/posts?today=2024-05-06&bucket=ON_DATE&on=2024-04-01",
			wantCode: http.StatusOK, wantData: marchallList(t, p3),
		},
		{
			name: "bad date param fails", path: "/v1/posts?on=05/06/2024",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"on": "invalid date, expected format 2006-01-02"}),
		},
		{
			name: "no match is an empty list", path: "/v1/posts?today=2024-05-06&search=zzz",
			wantCode: http.StatusOK, wantData: empty,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newViewerRequest(http.MethodGet, tt.path, tt.viewer)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_postApi_retrieveUpdateDestroy(t *testing.T) {
	resetDB(t)

	p := testutil.CreatePost(t, postRepo, "Remplacement M. Diko", post.TypeRemplacement,
		date(2024, time.May, 6), time.Time{}, alice)

	// retrieve
	req, rec := newRequest(http.MethodGet, "/v1/posts/"+p.ID)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, p)}, rec)

	// retrieve unknown
	req, rec = newRequest(http.MethodGet, "/v1/posts/nope")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)

	// update
	body := marchallObj(t, post.UpdatePost{Content: "Remplacement M. Diko (salle B2)"})
	req, rec = newRequest(http.MethodPut, "/v1/posts/"+p.ID, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var updated post.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	if updated.Content != "Remplacement M. Diko (salle B2)" {
		t.Errorf("failed! content = %q", updated.Content)
	}
	if updated.Type != p.Type {
		t.Errorf("failed! type changed to %v", updated.Type)
	}

	// update unknown
	req, rec = newRequest(http.MethodPut, "/v1/posts/nope", body)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)

	// destroy
	req, rec = newRequest(http.MethodDelete, "/v1/posts/"+p.ID)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
	}
	req, rec = newRequest(http.MethodGet, "/v1/posts/"+p.ID)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusNotFound)
	}
}

func Test_postApi_destroyMultiple(t *testing.T) {
	resetDB(t)

	p1 := testutil.CreatePost(t, postRepo, "Un", post.TypeInfo, date(2024, time.May, 6), time.Time{}, alice)
	p2 := testutil.CreatePost(t, postRepo, "Deux", post.TypeInfo, date(2024, time.May, 7), time.Time{}, alice)
	p3 := testutil.CreatePost(t, postRepo, "Trois", post.TypeInfo, date(2024, time.May, 8), time.Time{}, bob)

	// missing ids param
	req, rec := newRequest(http.MethodDelete, "/v1/posts")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, map[string]string{"ids": "this field is required"}),
	}, rec)

	req, rec = newRequest(http.MethodDelete, "/v1/posts?ids="+strings.Join([]string{p1.ID, p2.ID}, ","))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
	}

	req, rec = newRequest(http.MethodGet, "/v1/posts")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, p3)}, rec)
}

func Test_postApi_queryAuthors(t *testing.T) {
	resetDB(t)

	req, rec := newRequest(http.MethodGet, "/v1/posts/authors")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, []interface{}{}...)}, rec)

	testutil.CreatePost(t, postRepo, "Un", post.TypeInfo, date(2024, time.May, 6), time.Time{}, bob)
	testutil.CreatePost(t, postRepo, "Deux", post.TypeInfo, date(2024, time.May, 7), time.Time{}, alice)
	testutil.CreatePost(t, postRepo, "Trois", post.TypeInfo, date(2024, time.May, 8), time.Time{}, alice)

	req, rec = newRequest(http.MethodGet, "/v1/posts/authors")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, []string{"Alice", "Bob"})}, rec)
}

func Test_postApi_stats(t *testing.T) {
	resetDB(t)

	testutil.CreatePost(t, postRepo, "Réunion parents", post.TypeEvent,
		date(2024, time.May, 6), date(2024, time.May, 7), alice)
	testutil.CreatePost(t, postRepo, "Absence Mme Dupont", post.TypeAbsence,
		date(2024, time.May, 10), time.Time{}, alice)
	testutil.CreatePost(t, postRepo, "Info cantine", post.TypeInfo,
		date(2024, time.April, 1), date(2024, time.April, 2), bob)

	req, rec := newRequest(http.MethodGet, "/v1/posts/stats?today=2024-05-06&limit=2")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var got struct {
		post.Stats
		TypeChart    []view.ChartRow      `json:"type_chart"`
		NextUpcoming []view.UpcomingEntry `json:"next_upcoming"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}

	if got.Total != 3 {
		t.Errorf("failed! total = %v; want 3", got.Total)
	}
	if got.ActiveToday != 1 {
		t.Errorf("failed! active_today = %v; want 1", got.ActiveToday)
	}
	if got.Upcoming != 1 {
		t.Errorf("failed! upcoming = %v; want 1", got.Upcoming)
	}
	if got.Past != 1 {
		t.Errorf("failed! past = %v; want 1", got.Past)
	}

	if len(got.TypeChart) != len(post.Types) {
		t.Fatalf("failed! len(type_chart) = %v; want %v", len(got.TypeChart), len(post.Types))
	}
	for _, row := range got.TypeChart {
		want := 0
		switch row.Type {
		case post.TypeEvent, post.TypeAbsence, post.TypeInfo:
			want = 1
		}
		if row.Count != want {
			t.Errorf("failed! type_chart[%v].count = %v; want %v", row.Type, row.Count, want)
		}
	}

	wantUpcoming := []view.UpcomingEntry{
		{Title: "Réunion parents", Date: "06/05/2024", Type: post.TypeEvent},
		{Title: "Absence Mme Dupont", Date: "10/05/2024", Type: post.TypeAbsence},
	}
	if len(got.NextUpcoming) != len(wantUpcoming) {
		t.Fatalf("failed! len(next_upcoming) = %v; want %v", len(got.NextUpcoming), len(wantUpcoming))
	}
	for i, want := range wantUpcoming {
		if got.NextUpcoming[i] != want {
			t.Errorf("failed! next_upcoming[%d] = %+v; want %+v", i, got.NextUpcoming[i], want)
		}
	}
}

type calendarTestResponse struct {
	Mode      string `json:"mode"`
	ModeLabel string `json:"mode_label"`
	Recap     string `json:"recap"`
	Days      []struct {
		Date    time.Time   `json:"date"`
		Label   string      `json:"label"`
		InMonth bool        `json:"in_month"`
		Posts   []post.Post `json:"posts"`
	} `json:"days"`
}

func getCalendar(t *testing.T, path string) calendarTestResponse {
	t.Helper()

	req, rec := newRequest(http.MethodGet, path)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got calendarTestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	return got
}

func Test_postApi_calendar(t *testing.T) {
	resetDB(t)

	p1 := testutil.CreatePost(t, postRepo, "Réunion parents", post.TypeEvent,
		date(2024, time.May, 6), date(2024, time.May, 7), alice)
	p2 := testutil.CreatePost(t, postRepo, "Absence Mme Dupont", post.TypeAbsence,
		date(2024, time.May, 10), time.Time{}, alice)
	testutil.CreatePost(t, postRepo, "Portes ouvertes samedi !", post.TypeALaUne,
		date(2024, time.May, 6), time.Time{}, alice)

	got := getCalendar(t, "/v1/posts/calendar?mode=week&cursor=2024-05-08")

	if got.Mode != "week" {
		t.Errorf("failed! mode = %v; want week", got.Mode)
	}
	if got.ModeLabel != "1 semaine" {
		t.Errorf("failed! mode_label = %q; want %q", got.ModeLabel, "1 semaine")
	}
	if got.Recap != "du 06/05/2024 au 12/05/2024" {
		t.Errorf("failed! recap = %q", got.Recap)
	}
	if len(got.Days) != 7 {
		t.Fatalf("failed! len(days) = %v; want 7", len(got.Days))
	}
	if got.Days[0].Label != "Lundi 6" {
		t.Errorf("failed! days[0].label = %q; want %q", got.Days[0].Label, "Lundi 6")
	}

	// headlines never reach the calendar
	if len(got.Days[0].Posts) != 1 || got.Days[0].Posts[0].ID != p1.ID {
		t.Errorf("failed! days[0].posts = %+v; want just %v", got.Days[0].Posts, p1.ID)
	}
	if len(got.Days[4].Posts) != 1 || got.Days[4].Posts[0].ID != p2.ID {
		t.Errorf("failed! days[4].posts = %+v; want just %v", got.Days[4].Posts, p2.ID)
	}
	if len(got.Days[6].Posts) != 0 {
		t.Errorf("failed! days[6].posts = %+v; want none", got.Days[6].Posts)
	}
}

func Test_postApi_calendarMonthGrid(t *testing.T) {
	resetDB(t)

	got := getCalendar(t, "/v1/posts/calendar?mode=month&cursor=2024-05-15")

	if got.Recap != "Mai 2024" {
		t.Errorf("failed! recap = %q; want %q", got.Recap, "Mai 2024")
	}
	// full Monday-start weeks around May 2024: Apr 29 .. Jun 2
	if len(got.Days) != 35 {
		t.Fatalf("failed! len(days) = %v; want 35", len(got.Days))
	}
	if got.Days[0].Label != "29/04" {
		t.Errorf("failed! days[0].label = %q; want %q", got.Days[0].Label, "29/04")
	}
	if got.Days[0].InMonth {
		t.Error("failed! Apr 29 flagged in month")
	}
	if !got.Days[2].InMonth { // May 1st
		t.Error("failed! May 1st not flagged in month")
	}
}

func Test_postApi_calendarDefaultsToDayMode(t *testing.T) {
	resetDB(t)

	got := getCalendar(t, "/v1/posts/calendar?mode=bogus&cursor=2024-05-06")

	if got.Mode != "day" {
		t.Errorf("failed! mode = %v; want day", got.Mode)
	}
	if len(got.Days) != 1 {
		t.Fatalf("failed! len(days) = %v; want 1", len(got.Days))
	}
	if got.Days[0].Label != "Lundi 06 mai" {
		t.Errorf("failed! days[0].label = %q; want %q", got.Days[0].Label, "Lundi 06 mai")
	}
}

func Test_postApi_calendarICS(t *testing.T) {
	resetDB(t)

	testutil.CreatePost(t, postRepo, "Réunion parents", post.TypeEvent,
		date(2024, time.May, 6), date(2024, time.May, 7), alice)
	testutil.CreatePost(t, postRepo, "Hors fenêtre", post.TypeInfo,
		date(2024, time.July, 1), time.Time{}, alice)

	req, rec := newRequest(http.MethodGet, "/v1/posts/calendar.ics?mode=month&cursor=2024-05-15")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("failed! Content-Type = %q", ct)
	}

	feed := rec.Body.String()
	if !strings.Contains(feed, "BEGIN:VCALENDAR") || !strings.Contains(feed, "END:VCALENDAR") {
		t.Error("failed! not an iCalendar feed")
	}
	if !strings.Contains(feed, "Réunion parents") {
		t.Error("failed! in-window event missing from feed")
	}
	if strings.Contains(feed, "Hors fenêtre") {
		t.Error("failed! out-of-window post exported")
	}
	if !strings.Contains(feed, "DTSTART;VALUE=DATE:20240506") {
		t.Error("failed! all-day DTSTART missing")
	}
}
