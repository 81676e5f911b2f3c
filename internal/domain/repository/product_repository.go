package repository

import "github.com/drxproject/plm-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (solo tiene sentido
	// dentro de una transacción). Serializa Advance/Override concurrentes
	// sobre el mismo producto.
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetByIDs(ids []string) ([]*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
