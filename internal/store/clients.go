package store

import (
	"context"
	"fmt"
	"strings"
)

type Client struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postal    string `json:"postal"`
	CreatedAt string `json:"created_at"`
}

// FullName joins first and last name, skipping an empty last name.
func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type ClientPatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Email     *string
	Address1  *string
	Address2  *string
	City      *string
	State     *string
	Postal    *string
}

const clientColumns = `id, first_name, last_name, phone, email, address1, address2, city, state, postal, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.Address1, &c.Address2, &c.City, &c.State, &c.Postal, &c.CreatedAt)
	return c, err
}

func (s *Store) CreateClient(ctx context.Context, c Client) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (first_name, last_name, phone, email, address1, address2, city, state, postal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.FirstName, c.LastName, c.Phone, c.Email, c.Address1, c.Address2, c.City, c.State, c.Postal)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	return result.LastInsertId()
}

func (s *Store) GetClient(ctx context.Context, id int64) (Client, error) {
	c, err := scanClient(s.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
	if err != nil {
		return Client{}, notFound(err, "client")
	}
	return c, nil
}

// ListClients returns clients newest first, optionally filtered by name, phone or email.
func (s *Store) ListClients(ctx context.Context, query string) ([]Client, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE (? = '' OR first_name LIKE ? OR last_name LIKE ? OR phone LIKE ? OR email LIKE ?)
		ORDER BY id DESC
	`, query, search, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, id int64, p ClientPatch) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE clients
		SET
			first_name = COALESCE(?, first_name),
			last_name = COALESCE(?, last_name),
			phone = COALESCE(?, phone),
			email = COALESCE(?, email),
			address1 = COALESCE(?, address1),
			address2 = COALESCE(?, address2),
			city = COALESCE(?, city),
			state = COALESCE(?, state),
			postal = COALESCE(?, postal),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		nullable(p.FirstName),
		nullable(p.LastName),
		nullable(p.Phone),
		nullable(p.Email),
		nullable(p.Address1),
		nullable(p.Address2),
		nullable(p.City),
		nullable(p.State),
		nullable(p.Postal),
		id,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return expectAffected(result, "update client")
}
