package dummydb

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mbokela/shule/core/post"
)

type postRepository struct {
	db *postTable
}

var _ post.Repository = (*postRepository)(nil) // interface compliance check

func NewPostRepository(db *DB) post.Repository {
	return &postRepository{db: db.post}
}

// query returns a stable snapshot ordered by creation time descending,
// newest first.
func (repo *postRepository) query() []post.Post {
	posts := make([]post.Post, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		posts = append(posts, *p)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

func (repo *postRepository) CreatePost(p post.Post) (post.Post, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	p.ID = uuid.New().String()
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *postRepository) QueryAllPosts() ([]post.Post, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *postRepository) GetPostByID(id string) (post.Post, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return post.Post{}, post.ErrNotFound
}

func (repo *postRepository) UpdatePost(p post.Post) (post.Post, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[p.ID]
	if !ok {
		return post.Post{}, post.ErrNotFound
	}

	if p.Content != "" {
		orig.Content = p.Content
	}
	if p.Type != "" {
		orig.Type = p.Type
	}
	if !p.StartAt.IsZero() {
		orig.StartAt = p.StartAt
	}
	if !p.EndAt.IsZero() {
		orig.EndAt = p.EndAt
	}
	orig.UpdatedAt = p.UpdatedAt
	return *orig, nil
}

func (repo *postRepository) DeletePostsByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
