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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `number, description, height, width, weight`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create inserta un material nuevo; el número es clave natural.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		m.Number, m.Description, m.Height, m.Width, m.Weight,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByNumber busca por número de material (nil sin error si no existe;
// la capa de aplicación decide si la ausencia es error).
func (r *MaterialRepo) GetByNumber(number string) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(context.Background(),
		`SELECT `+materialColumns+` FROM materials WHERE number = $1`, number,
	).Scan(&m.Number, &m.Description, &m.Height, &m.Width, &m.Weight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// List devuelve el catálogo paginado ordenado por número.
func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+materialColumns+` FROM materials ORDER BY number LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.Number, &m.Description, &m.Height, &m.Width, &m.Weight); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza los atributos editables del material.
func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materials
		SET description = $2, height = $3, width = $4, weight = $5, updated_at = now()
		WHERE number = $1`
	tag, err := r.q.Exec(context.Background(), query,
		m.Number, m.Description, m.Height, m.Width, m.Weight)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// Delete elimina el material del catálogo.
func (r *MaterialRepo) Delete(number string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM materials WHERE number = $1`, number)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}
