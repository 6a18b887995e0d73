package student

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mbokela/shule/core"
	"github.com/mbokela/shule/core/calendar"
)

// Genders
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "X"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Mr."
	case GenderFemale:
		return "Mrs."
	case GenderOther:
		return "X"
	}
	return "—"
}

// Record kinds, from strongest to weakest commitment.
type Kind string

const (
	KindLeft          Kind = "LEFT"
	KindEnrolled      Kind = "ENROLLED"
	KindPreRegistered Kind = "PRE_REGISTERED"
	KindLead          Kind = "LEAD"
)

var Kinds = []Kind{KindLead, KindPreRegistered, KindEnrolled, KindLeft}

func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

type Student struct {
	ID            string    `json:"id" db:"id"`
	FirstName     string    `json:"first_name" db:"first_name"`
	LastName      string    `json:"last_name" db:"last_name"`
	Note          string    `json:"note,omitempty" db:"note"`
	Gender        Gender    `json:"gender,omitempty" db:"gender"`
	BirthDate     time.Time `json:"birth_date,omitempty" db:"birth_date"`
	BirthPlace    string    `json:"birth_place,omitempty" db:"birth_place"`
	ArrivalDate   time.Time `json:"arrival_date,omitempty" db:"arrival_date"`
	DepartureDate time.Time `json:"departure_date,omitempty" db:"departure_date"`
	IsAuPair      *bool     `json:"is_au_pair,omitempty" db:"is_au_pair"`
	LeftEarly     bool      `json:"left_early" db:"left_early"`

	// registration pipeline
	PreRegistration bool   `json:"pre_registration" db:"pre_registration"`
	Paid150         bool   `json:"paid_150" db:"paid_150"`
	PaidTotal       bool   `json:"paid_total" db:"paid_total"`
	DossierNumber   string `json:"dossier_number,omitempty" db:"dossier_number"`

	SeasonID string `json:"season_id,omitempty" db:"season_id"`
	ClassS1  string `json:"class_s1,omitempty" db:"class_s1"`
	ClassS2  string `json:"class_s2,omitempty" db:"class_s2"`

	// au-pair host family contact
	FamilyName1 string `json:"family_name1,omitempty" db:"family_name1"`
	FamilyName2 string `json:"family_name2,omitempty" db:"family_name2"`
	FamilyEmail string `json:"family_email,omitempty" db:"family_email"`

	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (s *Student) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", s.FirstName, s.LastName))
}

// Kind derives the record kind from the pipeline flags. A student who
// left early stays LEFT whatever else the record says.
func (s *Student) Kind() Kind {
	switch {
	case s.LeftEarly:
		return KindLeft
	case s.PaidTotal:
		return KindEnrolled
	case s.PreRegistration:
		return KindPreRegistered
	}
	return KindLead
}

// Age returns the full years lived as of today; ok is false when the
// birth date is unknown.
func (s *Student) Age(today time.Time) (int, bool) {
	if s.BirthDate.IsZero() {
		return 0, false
	}
	age := today.Year() - s.BirthDate.Year()
	if today.Month() < s.BirthDate.Month() ||
		(today.Month() == s.BirthDate.Month() && today.Day() < s.BirthDate.Day()) {
		age--
	}
	return age, true
}

// StayDays returns the length of the enrollment window in days; ok is
// false when either bound is missing or the window is inverted.
func (s *Student) StayDays() (int, bool) {
	if s.ArrivalDate.IsZero() || s.DepartureDate.IsZero() {
		return 0, false
	}
	// count calendar days, immune to DST shifts in the stored location
	arrival := time.Date(s.ArrivalDate.Year(), s.ArrivalDate.Month(), s.ArrivalDate.Day(), 0, 0, 0, 0, time.UTC)
	departure := time.Date(s.DepartureDate.Year(), s.DepartureDate.Month(), s.DepartureDate.Day(), 0, 0, 0, 0, time.UTC)
	if departure.Before(arrival) {
		return 0, false
	}
	return int(departure.Sub(arrival).Hours() / 24), true
}

// OnDay reports whether the student is expected on campus on the given
// day, i.e. the day falls within the arrival/departure window. A missing
// departure reads as a single-day stay.
func (s *Student) OnDay(day time.Time) bool {
	if s.ArrivalDate.IsZero() {
		return false
	}
	return calendar.OverlapsDay(s.ArrivalDate, s.DepartureDate, day)
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	FirstName       string    `json:"first_name" validate:"required"`
	LastName        string    `json:"last_name" validate:"required"`
	Note            string    `json:"note"`
	Gender          Gender    `json:"gender" validate:"omitempty,gender"`
	BirthDate       time.Time `json:"birth_date"`
	BirthPlace      string    `json:"birth_place"`
	ArrivalDate     time.Time `json:"arrival_date"`
	DepartureDate   time.Time `json:"departure_date"`
	IsAuPair        *bool     `json:"is_au_pair"`
	PreRegistration bool      `json:"pre_registration"`
	Paid150         bool      `json:"paid_150"`
	PaidTotal       bool      `json:"paid_total"`
	DossierNumber   string    `json:"dossier_number"`
	SeasonID        string    `json:"season_id"`
	ClassS1         string    `json:"class_s1"`
	ClassS2         string    `json:"class_s2"`
	FamilyName1     string    `json:"family_name1"`
	FamilyName2     string    `json:"family_name2"`
	FamilyEmail     string    `json:"family_email" validate:"omitempty,email"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.BirthPlace = core.CleanString(ns.BirthPlace)
	ns.DossierNumber = core.CleanString(ns.DossierNumber)
	ns.FamilyEmail = core.CleanString(ns.FamilyEmail, true /* lower */)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. Zero-valued fields are left untouched.
type UpdateStudent struct {
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Note            string    `json:"note"`
	Gender          Gender    `json:"gender" validate:"omitempty,gender"`
	BirthDate       time.Time `json:"birth_date"`
	BirthPlace      string    `json:"birth_place"`
	ArrivalDate     time.Time `json:"arrival_date"`
	DepartureDate   time.Time `json:"departure_date"`
	IsAuPair        *bool     `json:"is_au_pair"`
	LeftEarly       *bool     `json:"left_early"`
	PreRegistration *bool     `json:"pre_registration"`
	Paid150         *bool     `json:"paid_150"`
	PaidTotal       *bool     `json:"paid_total"`
	DossierNumber   string    `json:"dossier_number"`
	SeasonID        string    `json:"season_id"`
	ClassS1         string    `json:"class_s1"`
	ClassS2         string    `json:"class_s2"`
	FamilyName1     string    `json:"family_name1"`
	FamilyName2     string    `json:"family_name2"`
	FamilyEmail     string    `json:"family_email" validate:"omitempty,email"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.FirstName = core.CleanString(us.FirstName)
	us.LastName = core.CleanString(us.LastName)
	us.BirthPlace = core.CleanString(us.BirthPlace)
	us.DossierNumber = core.CleanString(us.DossierNumber)
	us.FamilyEmail = core.CleanString(us.FamilyEmail, true /* lower */)
	return validate.Struct(us)
}

type QueryFilter struct {
	Search   string `query:"search"`
	SeasonID string `query:"season"`
	Kind     Kind   `query:"kind"`
	Gender   Gender `query:"gender"`
	AuPair   *bool  `query:"au_pair"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.SeasonID = core.CleanString(qf.SeasonID)
	if !qf.Kind.Valid() {
		qf.Kind = ""
	}
	if !qf.Gender.Valid() {
		qf.Gender = ""
	}
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.SeasonID == "" && qf.Kind == "" && qf.Gender == "" && qf.AuPair == nil
}

// Filter narrows a snapshot of students stage by stage; each stage only
// ever removes rows. Input order is preserved.
func Filter(students []Student, filter QueryFilter) []Student {
	if filter.IsEmpty() {
		return students
	}

	if filter.SeasonID != "" {
		students = keep(students, func(s Student) bool { return s.SeasonID == filter.SeasonID })
	}
	if filter.Kind != "" {
		students = keep(students, func(s Student) bool { return s.Kind() == filter.Kind })
	}
	if filter.Gender != "" {
		students = keep(students, func(s Student) bool { return s.Gender == filter.Gender })
	}
	if filter.AuPair != nil {
		students = keep(students, func(s Student) bool {
			return s.IsAuPair != nil && *s.IsAuPair == *filter.AuPair
		})
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		students = keep(students, func(s Student) bool {
			hay := strings.ToLower(strings.Join([]string{
				s.FirstName, s.LastName, s.DossierNumber, s.BirthPlace,
				s.FamilyName1, s.FamilyName2, s.FamilyEmail,
			}, " "))
			return strings.Contains(hay, needle)
		})
	}
	return students
}

func keep(students []Student, match func(Student) bool) []Student {
	var filtered []Student
	for _, s := range students {
		if match(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
