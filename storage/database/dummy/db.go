// Package dummydb provides in-memory reference repositories used in DEV
// mode and by the handler tests.
package dummydb

import (
	"sync"

	"github.com/mbokela/shule/core/post"
	"github.com/mbokela/shule/core/student"
	"github.com/mbokela/shule/core/user"
)

type (
	DB struct {
		post    *postTable
		student *studentTable
		user    *userTable
	}

	postTable struct {
		sync.RWMutex
		table map[string]*post.Post
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
)

func Open() (*DB, error) {
	db := &DB{
		post:    &postTable{table: make(map[string]*post.Post)},
		student: &studentTable{table: make(map[string]*student.Student)},
		user:    &userTable{table: make(map[string]*user.User)},
	}
	return db, nil
}
