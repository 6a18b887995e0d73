package sqlxrepos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mbokela/shule/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(s student.Student) (student.Student, error) {
	s.ID = uuid.New().String()
	const q = `
		INSERT INTO student (
			id, first_name, last_name, note, gender, birth_date, birth_place,
			arrival_date, departure_date, is_au_pair, left_early,
			pre_registration, paid_150, paid_total, dossier_number,
			season_id, class_s1, class_s2, family_name1, family_name2, family_email,
			created_at, updated_at
		) VALUES (
			:id, :first_name, :last_name, :note, :gender, :birth_date, :birth_place,
			:arrival_date, :departure_date, :is_au_pair, :left_early,
			:pre_registration, :paid_150, :paid_total, :dossier_number,
			:season_id, :class_s1, :class_s2, :family_name1, :family_name2, :family_email,
			:created_at, :updated_at
		)`
	if _, err := repo.db.NamedExec(q, s); err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return s, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	var students []student.Student
	const q = `SELECT * FROM student ORDER BY last_name, first_name`
	if err := repo.db.Select(&students, q); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	var s student.Student
	const q = `SELECT * FROM student WHERE id = $1`
	if err := repo.db.Get(&s, q, id); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return s, nil
}

// UpdateStudent saves the full record; the service merges beforehand.
func (repo *studentRepository) UpdateStudent(s student.Student) (student.Student, error) {
	const q = `
		UPDATE student SET
			first_name = :first_name, last_name = :last_name, note = :note,
			gender = :gender, birth_date = :birth_date, birth_place = :birth_place,
			arrival_date = :arrival_date, departure_date = :departure_date,
			is_au_pair = :is_au_pair, left_early = :left_early,
			pre_registration = :pre_registration, paid_150 = :paid_150,
			paid_total = :paid_total, dossier_number = :dossier_number,
			season_id = :season_id, class_s1 = :class_s1, class_s2 = :class_s2,
			family_name1 = :family_name1, family_name2 = :family_name2,
			family_email = :family_email, updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExec(q, s)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func (repo *studentRepository) DeleteStudentsByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM student WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting students")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}
