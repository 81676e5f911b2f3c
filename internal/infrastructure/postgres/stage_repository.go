package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/drxproject/plm-api/internal/domain"
	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
	"github.com/drxproject/plm-api/internal/domain/repository"
)

var _ repository.StageRepository = (*StageRepo)(nil)

// StageRepo implementación de StageRepository sobre PostgreSQL. Las
// etapas se siembran al arrancar y no se modifican después.
type StageRepo struct {
	q Querier
}

// NewStageRepository construye el adaptador de etapas. Pasar pool o tx (Querier).
func NewStageRepository(q Querier) *StageRepo {
	return &StageRepo{q: q}
}

// GetByName obtiene una etapa por nombre (nil sin error si no existe).
func (r *StageRepo) GetByName(name lifecycle.Stage) (*entity.Stage, error) {
	var s entity.Stage
	var rawName string
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description FROM stages WHERE name = $1`, string(name),
	).Scan(&s.ID, &rawName, &s.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stage: %w", err)
	}
	s.Name = lifecycle.Stage(rawName)
	return &s, nil
}

// List devuelve todas las etapas sembradas.
func (r *StageRepo) List() ([]*entity.Stage, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name, description FROM stages ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stage
	for rows.Next() {
		var s entity.Stage
		var rawName string
		if err := rows.Scan(&s.ID, &rawName, &s.Description); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		s.Name = lifecycle.Stage(rawName)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Create siembra una etapa nueva.
func (r *StageRepo) Create(stage *entity.Stage) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO stages (id, name, description) VALUES ($1, $2, $3)`,
		stage.ID, string(stage.Name), stage.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stage: %w", err)
	}
	return nil
}

// ExistsByName indica si la etapa ya está sembrada.
func (r *StageRepo) ExistsByName(name lifecycle.Stage) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stages WHERE name = $1)`, string(name),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists stage: %w", err)
	}
	return exists, nil
}
