package repository

import (
	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
)

// StageRepository define el puerto de persistencia para el catálogo de
// etapas sembrado. Las etapas son inmutables después de la siembra.
type StageRepository interface {
	GetByName(name lifecycle.Stage) (*entity.Stage, error)
	List() ([]*entity.Stage, error)
	Create(stage *entity.Stage) error
	ExistsByName(name lifecycle.Stage) (bool, error)
}
