package post

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("post not found")

type (
	Repository interface {
		CreatePost(p Post) (Post, error)
		QueryAllPosts() ([]Post, error)
		GetPostByID(id string) (Post, error)
		// UpdatePost only saves set fields of p.
		UpdatePost(p Post) (Post, error)
		DeletePostsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(np NewPost, author Viewer) (Post, error) {
	now := time.Now().UTC()
	p := Post{
		Content:     np.Content,
		Type:        np.Type,
		StartAt:     np.StartAt,
		EndAt:       np.EndAt,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreatePost(p)
}

func (svc *Service) QueryAll() ([]Post, error) {
	return svc.repo.QueryAllPosts()
}

func (svc *Service) GetByID(id string) (Post, error) {
	return svc.repo.GetPostByID(id)
}

// Filter fetches a fresh snapshot and narrows it by the given filter state.
func (svc *Service) Filter(filter QueryFilter, viewer Viewer, today time.Time) ([]Post, error) {
	filter.Clean()
	posts, err := svc.repo.QueryAllPosts()
	if err != nil {
		return nil, err
	}
	return Filter(posts, filter, viewer, today), nil
}

// Stats aggregates the current snapshot into the dashboard rollup.
func (svc *Service) Stats(today time.Time, upcomingLimit int) (Stats, error) {
	posts, err := svc.repo.QueryAllPosts()
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(posts, today, upcomingLimit), nil
}

// Authors lists the distinct author names of the current snapshot.
func (svc *Service) Authors() ([]string, error) {
	posts, err := svc.repo.QueryAllPosts()
	if err != nil {
		return nil, err
	}
	return UniqueAuthors(posts), nil
}

func (svc *Service) Update(id string, up UpdatePost) (Post, error) {
	p := Post{
		ID:        id,
		Content:   up.Content,
		Type:      up.Type,
		StartAt:   up.StartAt,
		EndAt:     up.EndAt,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdatePost(p)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeletePostsByID(ids...)
}
