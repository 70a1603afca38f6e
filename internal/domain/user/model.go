package user

// Role represents what a user is allowed to do in the portal.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RoleClient    Role = "client"
)

// User is an identity known to the portal. Users are immutable once seeded.
type User struct {
	ID     string `json:"id" yaml:"id" validate:"required"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Role   Role   `json:"role" yaml:"role" validate:"oneof=admin developer client"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}
