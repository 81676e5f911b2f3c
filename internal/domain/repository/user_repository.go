package repository

import "github.com/drxproject/plm-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Las implementaciones cargan siempre el conjunto de roles del usuario.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
	ReplaceRoles(userID string, roles []string) error
	ExistsWithRole(role string) (bool, error)
	Delete(id string) error
}
