package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/apexautolab/leadapi/internal/domain/lead"
	"github.com/apexautolab/leadapi/internal/repository"
)

// leadRow maps the leads table for gorm.
type leadRow struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;default:now()"`
	Name         *string   `gorm:"column:name;type:text"`
	Phone        string    `gorm:"column:phone;type:text;not null"`
	Car          *string   `gorm:"column:car;type:text"`
	Message      *string   `gorm:"column:message;type:text"`
	Page         *string   `gorm:"column:page;type:text"`
	UA           *string   `gorm:"column:ua;type:text"`
	Status       string    `gorm:"column:status;type:text;not null;default:'new'"`
	InternalNote *string   `gorm:"column:internal_note;type:text"`
}

func (leadRow) TableName() string { return "leads" }

func (row *leadRow) toLead() *lead.Lead {
	return &lead.Lead{
		ID:           row.ID,
		CreatedAt:    row.CreatedAt,
		Name:         row.Name,
		Phone:        row.Phone,
		Car:          row.Car,
		Message:      row.Message,
		Page:         row.Page,
		UA:           row.UA,
		Status:       row.Status,
		InternalNote: row.InternalNote,
	}
}

// LeadRepository implements lead.Repository for Postgres
type LeadRepository struct {
	db *DB
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db *DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a new lead and assigns its id.
func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	row := leadRow{
		CreatedAt:    l.CreatedAt,
		Name:         l.Name,
		Phone:        l.Phone,
		Car:          l.Car,
		Message:      l.Message,
		Page:         l.Page,
		UA:           l.UA,
		Status:       l.Status,
		InternalNote: l.InternalNote,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	l.ID = row.ID

	return nil
}

// Get retrieves a lead by id
func (r *LeadRepository) Get(ctx context.Context, id int64) (*lead.Lead, error) {
	var row leadRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return row.toLead(), nil
}

// List returns lead references matching the given options, newest first.
func (r *LeadRepository) List(ctx context.Context, opts repository.ListLeadsOptions) ([]lead.LeadRef, error) {
	q := r.db.WithContext(ctx).Model(&leadRow{})

	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	if opts.Query != "" {
		pattern := "%" + opts.Query + "%"
		q = q.Where("phone ILIKE ? OR name ILIKE ? OR car ILIKE ? OR message ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var rows []leadRow
	err := q.Select("id", "created_at", "phone", "status").
		Order("id DESC").
		Limit(opts.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	refs := make([]lead.LeadRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, lead.LeadRef{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			Phone:     row.Phone,
			Status:    row.Status,
		})
	}

	return refs, nil
}

// UpdateStatus writes back status and internal note and returns the
// post-update row.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, status string, note *string) (*lead.Lead, error) {
	result := r.db.WithContext(ctx).Model(&leadRow{}).Where("id = ?", id).Updates(map[string]any{
		"status":        status,
		"internal_note": note,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update lead: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	return r.Get(ctx, id)
}
