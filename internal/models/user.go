package models

type User struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password"`
	Role         string  `json:"role" db:"role"`
	ResetToken   *string `json:"-" db:"reset_token"`
	ResetExpires *int64  `json:"-" db:"reset_expires"`
}

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleFaculty UserRole = "faculty"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func IsValidUserRole(role string) bool {
	switch role {
	case "student", "faculty", "admin":
		return true
	default:
		return false
	}
}
