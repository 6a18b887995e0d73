package sqlxrepos

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mbokela/shule/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

// dbUser flattens User.Roles into a comma-separated column.
type dbUser struct {
	user.User
	RolesCSV string `db:"roles"`
}

func toRow(usr user.User) dbUser {
	return dbUser{User: usr, RolesCSV: strings.Join(usr.Roles, ",")}
}

func (row dbUser) toUser() user.User {
	usr := row.User
	if row.RolesCSV != "" {
		usr.Roles = strings.Split(row.RolesCSV, ",")
	}
	return usr
}

func (repo *userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	excluded := make([]string, 0, len(excludedUsers)+1)
	excluded = append(excluded, "") // IN () is invalid; an impossible id keeps the query valid
	for _, usr := range excludedUsers {
		excluded = append(excluded, usr.ID)
	}

	q, args, err := sqlx.In(
		`SELECT username, email FROM app_user WHERE (username = ? OR email = ?) AND id NOT IN (?)`,
		username, email, excluded,
	)
	if err != nil {
		return errors.Wrap(err, "checking uniqueness")
	}

	rows, err := repo.db.Query(repo.db.Rebind(q), args...)
	if err != nil {
		return errors.Wrap(err, "checking uniqueness")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var uname, mail string
		if err = rows.Scan(&uname, &mail); err != nil {
			return errors.Wrap(err, "checking uniqueness")
		}
		if username != "" && uname == username {
			return user.ErrUsernameExists
		}
		if email != "" && mail == email {
			return user.ErrEmailExists
		}
	}
	return errors.Wrap(rows.Err(), "checking uniqueness")
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	const q = `
		INSERT INTO app_user (id, name, username, email, is_active, roles, password_hash, created_at, updated_at)
		VALUES (:id, :name, :username, :email, :is_active, :roles, :password_hash, :created_at, :updated_at)`
	if _, err := repo.db.NamedExec(q, toRow(usr)); err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var rows []dbUser
	const q = `SELECT * FROM app_user ORDER BY created_at`
	if err := repo.db.Select(&rows, q); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

func (repo *userRepository) getBy(clause string, arg interface{}) (user.User, error) {
	var row dbUser
	if err := repo.db.Get(&row, `SELECT * FROM app_user WHERE `+clause, arg); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	return repo.getBy(`id = $1`, id)
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	return repo.getBy(`username = $1`, username)
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	return repo.getBy(`email = $1`, email)
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	q := `SELECT * FROM app_user WHERE 1=1`
	var args []interface{}

	if filter.Search != "" {
		q += ` AND (name ILIKE ? OR username ILIKE ? OR email ILIKE ?)`
		needle := "%" + filter.Search + "%"
		args = append(args, needle, needle, needle)
	}
	if len(filter.Roles) > 0 {
		clauses := make([]string, 0, len(filter.Roles))
		for _, role := range filter.Roles {
			clauses = append(clauses, `roles LIKE ?`)
			args = append(args, "%"+role+"%")
		}
		q += ` AND (` + strings.Join(clauses, " OR ") + `)`
	}
	if filter.IsActive != nil {
		q += ` AND is_active = ?`
		args = append(args, *filter.IsActive)
	}
	if !filter.CreatedFrom.IsZero() {
		q += ` AND created_at >= ?`
		args = append(args, filter.CreatedFrom)
	}
	if !filter.CreatedTo.IsZero() {
		q += ` AND created_at <= ?`
		args = append(args, filter.CreatedTo)
	}
	q += ` ORDER BY created_at`

	var rows []dbUser
	if err := repo.db.Select(&rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	row := struct {
		dbUser
		SetActive *bool `db:"set_active"`
	}{dbUser: toRow(usr), SetActive: isActive}

	const q = `
		UPDATE app_user SET
			name          = COALESCE(NULLIF(:name, ''), name),
			username      = COALESCE(NULLIF(:username, ''), username),
			email         = COALESCE(NULLIF(:email, ''), email),
			roles         = COALESCE(NULLIF(:roles, ''), roles),
			password_hash = CASE WHEN length(:password_hash) > 0 THEN :password_hash ELSE password_hash END,
			is_active     = COALESCE(:set_active, is_active),
			updated_at    = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExec(q, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUserByID(usr.ID)
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM app_user WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting users")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
