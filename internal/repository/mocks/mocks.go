// Package mocks provides testify mocks for the storage and notification
// contracts used by the lead service tests.
package mocks

import (
	"context"

	"github.com/apexautolab/leadapi/internal/domain/lead"
	"github.com/apexautolab/leadapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

// LeadRepository is a mock for lead.Repository.
type LeadRepository struct {
	mock.Mock
}

func (m *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *LeadRepository) Get(ctx context.Context, id int64) (*lead.Lead, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*lead.Lead); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LeadRepository) List(ctx context.Context, opts repository.ListLeadsOptions) ([]lead.LeadRef, error) {
	args := m.Called(ctx, opts)
	if refs, ok := args.Get(0).([]lead.LeadRef); ok {
		return refs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LeadRepository) UpdateStatus(ctx context.Context, id int64, status string, note *string) (*lead.Lead, error) {
	args := m.Called(ctx, id, status, note)
	if l, ok := args.Get(0).(*lead.Lead); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

// Notifier is a mock for lead.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) LeadCreated(ctx context.Context, l *lead.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
