package entity

import (
	"time"

	"github.com/drxproject/plm-api/internal/domain/lifecycle"
)

// User representa un usuario del sistema con un conjunto de roles
// (ver lifecycle.RoleXxx). Los roles no tienen orden.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene el rol admin.
func (u *User) IsAdmin() bool {
	return lifecycle.HasAny(u.Roles, lifecycle.RoleAdmin)
}
