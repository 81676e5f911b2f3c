// Package bom implementa la reconciliación de la lista de materiales:
// converger las líneas persistidas de un BOM hacia una lista enviada
// calculando los inserts/updates/deletes mínimos.
package bom

import (
	"github.com/google/uuid"

	"github.com/drxproject/plm-api/internal/application/dto"
	"github.com/drxproject/plm-api/internal/domain"
	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/repository"
)

// Reconcile converge las líneas del BOM hacia submitted. Política:
//   - Lista vacía o ausente = vaciar el BOM (intencional, no un no-op).
//   - Línea existente para el material → update en sitio (misma identidad).
//   - Línea nueva → se crea solo si el material existe en el catálogo;
//     si no existe, la entrada se omite en silencio (a diferencia de la
//     creación de producto, que rechaza todo; ver ValidateLines).
//   - Entradas sin número de material se ignoran.
//   - Toda línea persistida no presente en submitted se borra.
//
// Reconciliar dos veces con la misma lista es idempotente.
func Reconcile(bomRepo repository.BomRepository, materialRepo repository.MaterialRepository, bomID string, submitted []dto.BomLineRequest) error {
	current, err := bomRepo.LinesFor(bomID)
	if err != nil {
		return err
	}

	if len(submitted) == 0 {
		if len(current) == 0 {
			return nil
		}
		return bomRepo.DeleteLines(current)
	}

	byNumber := make(map[string]*entity.BomMaterial, len(current))
	for _, line := range current {
		byNumber[line.MaterialNumber] = line
	}

	processed := make(map[string]bool, len(submitted))
	for _, in := range submitted {
		if in.MaterialNumber == "" {
			continue
		}
		processed[in.MaterialNumber] = true

		if existing, ok := byNumber[in.MaterialNumber]; ok {
			existing.Quantity = in.Quantity
			existing.UnitMeasureCode = in.UnitMeasureCode
			if err := bomRepo.SaveLine(existing); err != nil {
				return err
			}
			continue
		}

		material, err := materialRepo.GetByNumber(in.MaterialNumber)
		if err != nil {
			return err
		}
		if material == nil {
			continue
		}
		line := &entity.BomMaterial{
			ID:              uuid.New().String(),
			BomID:           bomID,
			MaterialNumber:  material.Number,
			Quantity:        in.Quantity,
			UnitMeasureCode: in.UnitMeasureCode,
		}
		if err := bomRepo.SaveLine(line); err != nil {
			return err
		}
	}

	var toDelete []*entity.BomMaterial
	for _, line := range current {
		if !processed[line.MaterialNumber] {
			toDelete = append(toDelete, line)
		}
	}
	if len(toDelete) > 0 {
		return bomRepo.DeleteLines(toDelete)
	}
	return nil
}

// ValidateLines es la validación del camino de CREACIÓN: si algún
// material referido no existe en el catálogo se rechaza la operación
// completa con ErrMaterialNotFound (fail-fast, sin BOM parcial).
func ValidateLines(materialRepo repository.MaterialRepository, lines []dto.BomLineRequest) error {
	for _, in := range lines {
		material, err := materialRepo.GetByNumber(in.MaterialNumber)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrMaterialNotFound
		}
	}
	return nil
}
