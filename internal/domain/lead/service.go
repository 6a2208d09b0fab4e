package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/apexautolab/leadapi/internal/repository"
)

// Listing limits: a request with no usable limit gets DefaultListLimit rows,
// and no request gets more than MaxListLimit.
const (
	DefaultListLimit = 200
	MaxListLimit     = 500
)

// Service handles lead business logic.
type Service struct {
	leads    Repository
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a new lead service.
func NewService(leads Repository, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		leads:    leads,
		notifier: notifier,
		logger:   logger,
	}
}

// Create validates and persists a public submission, then fires a
// best-effort notification. A notification failure is logged and swallowed;
// it never fails the request or rolls back the stored lead.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Lead, error) {
	phone := sanitize(req.Phone, maxPhoneLen)
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	l := &Lead{
		CreatedAt: time.Now().UTC(),
		Name:      optional(sanitize(req.Name, maxNameLen)),
		Phone:     phone,
		Car:       optional(sanitize(req.Car, maxCarLen)),
		Message:   optional(sanitize(req.Message, maxMessageLen)),
		Page:      optional(sanitize(req.Page, maxPageLen)),
		UA:        optional(sanitize(req.UA, maxUALen)),
		Status:    StatusNew,
	}

	if err := s.leads.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("creating lead: %w", err)
	}

	if err := s.notifier.LeadCreated(ctx, l); err != nil {
		s.logger.Warn("lead notification failed", "lead_id", l.ID, "error", err)
	}

	return l, nil
}

// Get fetches a single lead by id.
func (s *Service) Get(ctx context.Context, id int64) (*Lead, error) {
	l, err := s.leads.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting lead: %w", err)
	}
	return l, nil
}

// List returns the reduced projection of leads matching the filter, newest
// first. A non-positive limit falls back to the default; anything above the
// ceiling is clamped.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]LeadRef, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	refs, err := s.leads.List(ctx, repository.ListLeadsOptions{
		Status: strings.TrimSpace(opts.Status),
		Query:  strings.TrimSpace(opts.Query),
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	return refs, nil
}

// Update applies a partial admin update to status and internal note. Omitted
// fields keep the currently stored value; a status cleared to empty resets
// to "new". Concurrent updates to the same lead are last-write-wins.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Lead, error) {
	cur, err := s.leads.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting lead: %w", err)
	}

	status := cur.Status
	if req.Status != nil {
		status = *req.Status
	}
	status = sanitize(status, maxStatusLen)
	if status == "" {
		status = StatusNew
	}

	note := ""
	if cur.InternalNote != nil {
		note = *cur.InternalNote
	}
	if req.InternalNote != nil {
		note = *req.InternalNote
	}

	updated, err := s.leads.UpdateStatus(ctx, id, status, optional(sanitize(note, maxNoteLen)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating lead: %w", err)
	}
	return updated, nil
}
