package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/apexautolab/leadapi/internal/domain/lead"
	"github.com/apexautolab/leadapi/internal/repository"
)

// LeadRepository implements lead.Repository for SQLite
type LeadRepository struct {
	db *DB
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db *DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a new lead and assigns its id.
func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	query := `
		INSERT INTO leads (created_at, name, phone, car, message, page, ua, status, internal_note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		l.CreatedAt,
		l.Name,
		l.Phone,
		l.Car,
		l.Message,
		l.Page,
		l.UA,
		l.Status,
		l.InternalNote,
	)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get lead id: %w", err)
	}
	l.ID = id

	return nil
}

// Get retrieves a lead by id
func (r *LeadRepository) Get(ctx context.Context, id int64) (*lead.Lead, error) {
	query := `
		SELECT id, created_at, name, phone, car, message, page, ua, status, internal_note
		FROM leads
		WHERE id = ?
	`

	var l lead.Lead
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID,
		&l.CreatedAt,
		&l.Name,
		&l.Phone,
		&l.Car,
		&l.Message,
		&l.Page,
		&l.UA,
		&l.Status,
		&l.InternalNote,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return &l, nil
}

// List returns lead references matching the given options, newest first.
// All user-supplied values are bound as parameters, never interpolated.
func (r *LeadRepository) List(ctx context.Context, opts repository.ListLeadsOptions) ([]lead.LeadRef, error) {
	query := `SELECT id, created_at, phone, status FROM leads`

	args := []any{}
	conditions := []string{}

	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, opts.Status)
	}

	if opts.Query != "" {
		pattern := "%" + strings.ToLower(opts.Query) + "%"
		conditions = append(conditions,
			`(LOWER(phone) LIKE ? OR LOWER(COALESCE(name, '')) LIKE ? OR LOWER(COALESCE(car, '')) LIKE ? OR LOWER(COALESCE(message, '')) LIKE ?)`)
		args = append(args, pattern, pattern, pattern, pattern)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var refs []lead.LeadRef
	for rows.Next() {
		var ref lead.LeadRef
		if err := rows.Scan(&ref.ID, &ref.CreatedAt, &ref.Phone, &ref.Status); err != nil {
			return nil, fmt.Errorf("failed to scan lead ref: %w", err)
		}
		refs = append(refs, ref)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead rows: %w", err)
	}

	return refs, nil
}

// UpdateStatus writes back status and internal note, the only mutable
// columns, and returns the post-update row.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, status string, note *string) (*lead.Lead, error) {
	query := `UPDATE leads SET status = ?, internal_note = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, note, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	return r.Get(ctx, id)
}
