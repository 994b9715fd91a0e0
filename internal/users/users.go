package users

// The portal knows exactly two roles.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// ValidRole reports whether role is one of the two portal roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}

type User struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	PhotoPath *string `json:"photo_path,omitempty"`
}
