package usecase

import (
	"github.com/drxproject/plm-api/internal/application/dto"
	"github.com/drxproject/plm-api/internal/domain"
	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
	"github.com/drxproject/plm-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (rutas solo-admin; el RBAC lo
// aplica el middleware, aquí solo queda la lógica).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// List lista usuarios excluyendo al llamador.
func (uc *UserUseCase) List(callerID string, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		if u.ID == callerID {
			continue
		}
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ReplaceRoles reemplaza el conjunto completo de roles del usuario.
// Todos los roles enviados deben ser conocidos.
func (uc *UserUseCase) ReplaceRoles(userID string, in dto.UpdateRolesRequest) (*dto.UserResponse, error) {
	if len(in.Roles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, r := range in.Roles {
		if !validRole(r) {
			return nil, domain.ErrInvalidInput
		}
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.userRepo.ReplaceRoles(userID, in.Roles); err != nil {
		return nil, err
	}
	user.Roles = in.Roles
	return toUserResponse(user), nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(userID string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(userID)
}

func validRole(role string) bool {
	switch role {
	case lifecycle.RoleAdmin, lifecycle.RoleDesigner, lifecycle.RolePortfolioManager, lifecycle.RoleSeller, lifecycle.RoleUser:
		return true
	}
	return false
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
