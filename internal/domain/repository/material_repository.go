package repository

import "github.com/drxproject/plm-api/internal/domain/entity"

// MaterialRepository define el puerto del catálogo de materiales.
// El catálogo es de solo lectura para el core de reconciliación.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByNumber(number string) (*entity.Material, error)
	List(limit, offset int) ([]*entity.Material, error)
	Update(material *entity.Material) error
	Delete(number string) error
}
