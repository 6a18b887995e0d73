package sqlxrepos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mbokela/shule/core/post"
)

type postRepository struct {
	db *sqlx.DB
}

var _ post.Repository = (*postRepository)(nil) // interface compliance check

func NewPostRepository(db *sqlx.DB) post.Repository {
	return &postRepository{db: db}
}

func (repo *postRepository) CreatePost(p post.Post) (post.Post, error) {
	p.ID = uuid.New().String()
	const q = `
		INSERT INTO post (id, content, type, start_at, end_at, author_id, author_name, author_email, created_at, updated_at)
		VALUES (:id, :content, :type, :start_at, :end_at, :author_id, :author_name, :author_email, :created_at, :updated_at)`
	if _, err := repo.db.NamedExec(q, p); err != nil {
		return post.Post{}, errors.Wrap(err, "inserting post")
	}
	return p, nil
}

func (repo *postRepository) QueryAllPosts() ([]post.Post, error) {
	var posts []post.Post
	const q = `SELECT * FROM post ORDER BY created_at DESC`
	if err := repo.db.Select(&posts, q); err != nil {
		return nil, errors.Wrap(err, "querying posts")
	}
	return posts, nil
}

func (repo *postRepository) GetPostByID(id string) (post.Post, error) {
	var p post.Post
	const q = `SELECT * FROM post WHERE id = $1`
	if err := repo.db.Get(&p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, errors.Wrap(err, "getting post")
	}
	return p, nil
}

func (repo *postRepository) UpdatePost(p post.Post) (post.Post, error) {
	// COALESCE/NULLIF keeps unset fields untouched
	const q = `
		UPDATE post SET
			content    = COALESCE(NULLIF(:content, ''), content),
			type       = COALESCE(NULLIF(:type, ''), type),
			start_at   = CASE WHEN CAST(:start_at AS timestamptz) = '0001-01-01T00:00:00Z'::timestamptz THEN start_at ELSE CAST(:start_at AS timestamptz) END,
			end_at     = CASE WHEN CAST(:end_at AS timestamptz) = '0001-01-01T00:00:00Z'::timestamptz THEN end_at ELSE CAST(:end_at AS timestamptz) END,
			updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExec(q, p)
	if err != nil {
		return post.Post{}, errors.Wrap(err, "updating post")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return post.Post{}, post.ErrNotFound
	}
	return repo.GetPostByID(p.ID)
}

func (repo *postRepository) DeletePostsByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM post WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting posts")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting posts")
	}
	return nil
}
