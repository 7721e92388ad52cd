package domain

// Role is the kind of actor an account represents.
type Role string

// List of account roles.
const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleCourier  Role = "courier"
)

var allowedRoles = [...]Role{RoleCustomer, RoleManager, RoleCourier}

// Valid checks if the Role is one of the known roles.
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Account is a directory entry. Password is stored and compared in plaintext.
type Account struct {
	ID       int64  `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Role     Role   `json:"role" yaml:"role"`
	Name     string `json:"name" yaml:"name"`
}

// NewAccount carries the fields of an account before an id is assigned.
type NewAccount struct {
	Username string
	Password string
	Role     Role
	Name     string
}
