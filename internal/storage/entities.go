package storage

import "time"

// Keys under which the application state is stored.
const (
	KeyTodos   = "todos"
	KeyProfile = "userProfile"
	KeyUsers   = "users"
)

// Entry is one stored key with its raw JSON value.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}
