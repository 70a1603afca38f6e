package project

import "time"

// Status represents where a project is in its lifecycle.
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on-hold"
	StatusCompleted Status = "completed"
)

// Statuses lists every project status in display order.
var Statuses = []Status{StatusPlanning, StatusActive, StatusOnHold, StatusCompleted}

// Project is a unit of work belonging to exactly one client.
type Project struct {
	ID          string     `json:"id" yaml:"id" validate:"required"`
	ClientID    string     `json:"client_id" yaml:"client_id" validate:"required"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status     `json:"status" yaml:"status" validate:"oneof=planning active on-hold completed"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	StartDate   *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// Clone returns a copy that shares no pointers with p.
func (p Project) Clone() Project {
	p.StartDate = cloneTime(p.StartDate)
	p.EndDate = cloneTime(p.EndDate)
	return p
}

// CreateRequest defines project creation inputs. The owning client comes from
// the current selection.
type CreateRequest struct {
	Name        string
	Description string
	Status      Status `validate:"omitempty,oneof=planning active on-hold completed"`
	StartDate   *time.Time
	EndDate     *time.Time
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
