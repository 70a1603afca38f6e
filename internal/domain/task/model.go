package task

import "time"

// Status represents task progress.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

// Task is a piece of work inside a project. Tasks are seeded and read-only.
type Task struct {
	ID          string     `json:"id" yaml:"id" validate:"required"`
	ProjectID   string     `json:"project_id" yaml:"project_id" validate:"required"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status     `json:"status" yaml:"status" validate:"oneof=todo in-progress review completed"`
	AssignedTo  string     `json:"assigned_to,omitempty" yaml:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
