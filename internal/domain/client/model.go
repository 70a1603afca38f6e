package client

import "time"

// Status represents whether a client is currently engaged.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Client is an external organization the portal manages work for.
type Client struct {
	ID        string    `json:"id" yaml:"id" validate:"required"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	Phone     string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Status    Status    `json:"status" yaml:"status" validate:"oneof=active inactive"`
	Logo      string    `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// CreateRequest defines client creation inputs. ID and CreatedAt are assigned
// by the store.
type CreateRequest struct {
	Name   string
	Email  string
	Phone  string
	Status Status `validate:"omitempty,oneof=active inactive"`
	Logo   string
}
