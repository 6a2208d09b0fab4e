// Package repository defines the storage-level contracts shared by the
// sqlite and postgres lead stores. Both stores implement lead.Repository;
// which one backs a deployment is decided once at startup.
package repository

// ListLeadsOptions provides filtering options for listing leads.
// Status is an exact match; Query is a case-insensitive substring matched
// against phone, name, car and message. Limit must already be clamped by
// the caller.
type ListLeadsOptions struct {
	Status string
	Query  string
	Limit  int
}
