package student

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("student not found")
	ErrInvertedStay = errors.New("departure date cannot be before arrival date")
)

type (
	Repository interface {
		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		// UpdateStudent saves the full record; the service merges first.
		UpdateStudent(s Student) (Student, error)
		DeleteStudentsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	s := Student{
		FirstName:       ns.FirstName,
		LastName:        ns.LastName,
		Note:            ns.Note,
		Gender:          ns.Gender,
		BirthDate:       ns.BirthDate,
		BirthPlace:      ns.BirthPlace,
		ArrivalDate:     ns.ArrivalDate,
		DepartureDate:   ns.DepartureDate,
		IsAuPair:        ns.IsAuPair,
		PreRegistration: ns.PreRegistration,
		Paid150:         ns.Paid150,
		PaidTotal:       ns.PaidTotal,
		DossierNumber:   ns.DossierNumber,
		SeasonID:        ns.SeasonID,
		ClassS1:         ns.ClassS1,
		ClassS2:         ns.ClassS2,
		FamilyName1:     ns.FamilyName1,
		FamilyName2:     ns.FamilyName2,
		FamilyEmail:     ns.FamilyEmail,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return svc.repo.CreateStudent(s)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

// Filter fetches a fresh snapshot and narrows it by the given filter state.
func (svc *Service) Filter(filter QueryFilter) ([]Student, error) {
	filter.Clean()
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	return Filter(students, filter), nil
}

// Stats aggregates the current snapshot into the roster dashboard rollup.
func (svc *Service) Stats(filter QueryFilter, today time.Time, seasonDays int) (Stats, error) {
	students, err := svc.Filter(filter)
	if err != nil {
		return Stats{}, err
	}
	return BuildStats(students, today, seasonDays), nil
}

// Update merges the set fields of us into the stored record and saves
// the result. The boolean pipeline flags travel as pointers so that an
// explicit false is distinguishable from an untouched field.
func (svc *Service) Update(id string, us UpdateStudent) (Student, error) {
	s, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}

	setString(&s.FirstName, us.FirstName)
	setString(&s.LastName, us.LastName)
	setString(&s.Note, us.Note)
	setString(&s.BirthPlace, us.BirthPlace)
	setString(&s.DossierNumber, us.DossierNumber)
	setString(&s.SeasonID, us.SeasonID)
	setString(&s.ClassS1, us.ClassS1)
	setString(&s.ClassS2, us.ClassS2)
	setString(&s.FamilyName1, us.FamilyName1)
	setString(&s.FamilyName2, us.FamilyName2)
	setString(&s.FamilyEmail, us.FamilyEmail)
	if us.Gender != "" {
		s.Gender = us.Gender
	}
	setTime(&s.BirthDate, us.BirthDate)
	setTime(&s.ArrivalDate, us.ArrivalDate)
	setTime(&s.DepartureDate, us.DepartureDate)
	if us.IsAuPair != nil {
		s.IsAuPair = us.IsAuPair
	}
	setBool(&s.LeftEarly, us.LeftEarly)
	setBool(&s.PreRegistration, us.PreRegistration)
	setBool(&s.Paid150, us.Paid150)
	setBool(&s.PaidTotal, us.PaidTotal)

	if s.DepartureDate.Before(s.ArrivalDate) && !s.DepartureDate.IsZero() {
		return Student{}, ErrInvertedStay
	}

	s.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(s)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setTime(dst *time.Time, v time.Time) {
	if !v.IsZero() {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteStudentsByID(ids...)
}
