// Package store is the data-access layer over the sqlite database. Every
// entity has typed create/read methods and a typed patch struct for partial
// updates; nil patch fields leave the column untouched.
package store

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidStatus  = errors.New("invalid estimate status")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidSection = errors.New("invalid category")
)

// Store wraps a database handle opened at startup.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// nullable converts an optional patch value into a query argument; nil becomes NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// expectAffected maps zero affected rows to ErrNotFound.
func expectAffected(result sql.Result, what string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", what, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("query %s: %w", what, err)
}
