package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/drxproject/plm-api/internal/domain"
	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL (usable con
// pool o tx). Los roles viven en user_roles y se cargan con el usuario.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste el usuario y su conjunto de roles.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return r.insertRoles(user.ID, user.Roles)
}

// GetByID obtiene un usuario con sus roles (nil sin error si no existe).
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy(`id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getBy(`email = $1`, email)
}

func (r *UserRepo) getBy(where string, arg any) (*entity.User, error) {
	query := `SELECT id, email, password_hash, name, created_at, updated_at FROM users WHERE ` + where
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	roles, err := r.rolesFor(u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return &u, nil
}

// List lista usuarios con sus roles, paginado.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT id, email, password_hash, name, created_at, updated_at FROM users ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, u := range list {
		roles, err := r.rolesFor(u.ID)
		if err != nil {
			return nil, err
		}
		u.Roles = roles
	}
	return list, nil
}

// ReplaceRoles reemplaza el conjunto completo de roles del usuario.
func (r *UserRepo) ReplaceRoles(userID string, roles []string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user roles: %w", err)
	}
	return r.insertRoles(userID, roles)
}

// ExistsWithRole indica si algún usuario tiene el rol (siembra del admin).
func (r *UserRepo) ExistsWithRole(role string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM user_roles WHERE role = $1)`, role,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists with role: %w", err)
	}
	return exists, nil
}

// Delete elimina un usuario; sus roles caen en cascada.
func (r *UserRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) insertRoles(userID string, roles []string) error {
	for _, role := range roles {
		if _, err := r.q.Exec(context.Background(),
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, role,
		); err != nil {
			return fmt.Errorf("insert user role: %w", err)
		}
	}
	return nil
}

func (r *UserRepo) rolesFor(userID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, fmt.Errorf("get user roles: %w", err)
	}
	defer rows.Close()
	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
