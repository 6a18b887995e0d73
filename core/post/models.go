package post

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mbokela/shule/core"
)

// Post types. Declaration order in Types is the tie-break order for the
// "top type per week" rollup: first declared wins.
type Type string

const (
	TypeALaUne       Type = "A_LA_UNE"
	TypeAbsence      Type = "ABSENCE"
	TypeEvent        Type = "EVENT"
	TypeInfo         Type = "INFO"
	TypeRemplacement Type = "REMPLACEMENT"
	TypeRetard       Type = "RETARD"
)

var (
	Types = []Type{TypeALaUne, TypeAbsence, TypeEvent, TypeInfo, TypeRemplacement, TypeRetard}

	typeLabels = map[Type]string{
		TypeALaUne:       "À la une",
		TypeAbsence:      "Absence",
		TypeEvent:        "Évènement",
		TypeInfo:         "Info",
		TypeRemplacement: "Remplacement",
		TypeRetard:       "Retard",
	}

	typeColors = map[Type]string{
		TypeALaUne:       "#f59e0b",
		TypeAbsence:      "#fb7185",
		TypeEvent:        "#34d399",
		TypeInfo:         "#38bdf8",
		TypeRemplacement: "#818cf8",
		TypeRetard:       "#fb923c",
	}
)

func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t Type) Label() string { return typeLabels[t] }
func (t Type) Color() string { return typeColors[t] }

// Post is a time-ranged board entry: announcement, event, absence notice...
// A zero EndAt means the post covers its start day only.
type Post struct {
	ID          string    `json:"id" db:"id"`
	Content     string    `json:"content" db:"content"`
	Type        Type      `json:"type" db:"type"`
	StartAt     time.Time `json:"start_at" db:"start_at"`
	EndAt       time.Time `json:"end_at,omitempty" db:"end_at"`
	AuthorID    string    `json:"author_id,omitempty" db:"author_id"`
	AuthorName  string    `json:"author_name" db:"author_name"`
	AuthorEmail string    `json:"author_email,omitempty" db:"author_email"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// EffectiveEnd is the post's range end; the start itself when EndAt is unset.
func (p Post) EffectiveEnd() time.Time {
	if p.EndAt.IsZero() {
		return p.StartAt
	}
	return p.EndAt
}

// Viewer identifies who is looking at the board; used for "mine" scoping.
type Viewer struct {
	ID    string
	Name  string
	Email string
}

// Owns reports whether p belongs to the viewer: author id comparison when
// both sides carry one, else email comparison when both sides carry one,
// else not owned.
func (v Viewer) Owns(p Post) bool {
	if v.ID != "" && p.AuthorID != "" {
		return p.AuthorID == v.ID
	}
	if v.Email != "" && p.AuthorEmail != "" {
		return p.AuthorEmail == v.Email
	}
	return false
}

// NewPost contains information needed to create a new Post.
type NewPost struct {
	Content string    `json:"content" validate:"required"`
	Type    Type      `json:"type" validate:"required,posttype"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at"`
}

func (np *NewPost) Validate(validate *validator.Validate) error {
	np.Content = core.CleanString(np.Content)
	return validate.Struct(np)
}

// UpdatePost defines what information may be provided to modify an
// existing Post. Zero-valued fields are left untouched.
type UpdatePost struct {
	Content string    `json:"content"`
	Type    Type      `json:"type" validate:"omitempty,posttype"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

func (up *UpdatePost) Validate(validate *validator.Validate) error {
	up.Content = core.CleanString(up.Content)
	return validate.Struct(up)
}

// Filter scopes
type Scope string

const (
	ScopeAll  Scope = "ALL"
	ScopeMine Scope = "MINE"
)

// Temporal buckets
type Bucket string

const (
	BucketAll       Bucket = "ALL"
	BucketToday     Bucket = "TODAY"
	BucketYesterday Bucket = "YESTERDAY"
	BucketSinceWeek Bucket = "SINCE_WEEK"
	BucketPast      Bucket = "PAST"
	BucketFuture    Bucket = "FUTURE"
	BucketOnDate    Bucket = "ON_DATE"
)

func (b Bucket) Valid() bool {
	switch b {
	case BucketAll, BucketToday, BucketYesterday, BucketSinceWeek, BucketPast, BucketFuture, BucketOnDate:
		return true
	}
	return false
}

// QueryFilter is the user-selected filter state: independent dimensions
// composed by Filter. Owned and mutated wholesale by the caller.
type QueryFilter struct {
	Scope  Scope  `query:"scope"`
	Bucket Bucket `query:"bucket"`
	On     time.Time
	Type   Type   `query:"type"`
	Author string `query:"author"`
	Search string `query:"search"`
}

// Clean normalizes the filter: whitespace is trimmed and any malformed
// dimension degrades to its "all" no-op rather than erroring.
func (qf *QueryFilter) Clean() {
	qf.Author = core.CleanString(qf.Author)
	qf.Search = core.CleanString(qf.Search)

	if qf.Scope != ScopeMine {
		qf.Scope = ScopeAll
	}
	if !qf.Bucket.Valid() {
		qf.Bucket = BucketAll
	}
	if qf.Bucket == BucketOnDate && qf.On.IsZero() {
		qf.Bucket = BucketAll
	}
	if qf.Type != "" && !qf.Type.Valid() {
		qf.Type = ""
	}
	if qf.Author == "ALL" {
		qf.Author = ""
	}
}

func (qf *QueryFilter) IsEmpty() bool {
	return (qf.Scope == "" || qf.Scope == ScopeAll) &&
		(qf.Bucket == "" || qf.Bucket == BucketAll) &&
		qf.Type == "" && qf.Author == "" && qf.Search == ""
}
