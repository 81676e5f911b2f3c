package repository

import "github.com/drxproject/plm-api/internal/domain/entity"

// BomRepository define el puerto de persistencia para Bom y sus líneas.
type BomRepository interface {
	Create(bom *entity.Bom) error
	GetByProduct(productID string) (*entity.Bom, error)
	UpdateName(bomID, name string) error
	// LinesFor devuelve las líneas persistidas del BOM (orden irrelevante).
	LinesFor(bomID string) ([]*entity.BomMaterial, error)
	// SaveLine inserta la línea si no tiene ID y la actualiza si lo tiene
	// (misma identidad, sin delete+recreate).
	SaveLine(line *entity.BomMaterial) error
	DeleteLines(lines []*entity.BomMaterial) error
	// CountLinesByMaterial / DeleteLinesByMaterial soportan el borrado de
	// un material del catálogo: primero se retiran sus referencias.
	CountLinesByMaterial(materialNumber string) (int, error)
	DeleteLinesByMaterial(materialNumber string) error
}
