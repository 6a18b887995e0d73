package testutil

import (
	"testing"
	"time"

	"github.com/mbokela/shule/core/post"
	"github.com/mbokela/shule/core/student"
	"github.com/mbokela/shule/core/user"
)

func CreatePost(
	t *testing.T,
	repo post.Repository,
	content string,
	typ post.Type,
	startAt, endAt time.Time,
	author post.Viewer,
	createdAt ...time.Time,
) post.Post {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	p, err := repo.CreatePost(post.Post{
		Content:     content,
		Type:        typ,
		StartAt:     startAt,
		EndAt:       endAt,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	})
	if err != nil {
		t.Fatalf("CreatePost() failed: %v", err)
	}
	return p
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	firstName, lastName string,
	s student.Student,
) student.Student {
	t.Helper()

	s.FirstName = firstName
	s.LastName = lastName
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
		s.UpdatedAt = s.CreatedAt
	}
	s, err := repo.CreateStudent(s)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
