package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/repository"
)

var _ repository.BomRepository = (*BomRepo)(nil)

// BomRepo implementación de BomRepository sobre PostgreSQL (usable con
// pool o tx).
type BomRepo struct {
	q Querier
}

// NewBomRepository construye el adaptador de BOMs. Pasar pool o tx (Querier).
func NewBomRepository(q Querier) *BomRepo {
	return &BomRepo{q: q}
}

// Create persiste un BOM nuevo (sin líneas; se guardan con SaveLine).
func (r *BomRepo) Create(bom *entity.Bom) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO boms (id, product_id, name) VALUES ($1, $2, $3)`,
		bom.ID, bom.ProductID, bom.Name,
	)
	if err != nil {
		return fmt.Errorf("insert bom: %w", err)
	}
	return nil
}

// GetByProduct obtiene el BOM del producto (nil sin error si no tiene).
func (r *BomRepo) GetByProduct(productID string) (*entity.Bom, error) {
	var b entity.Bom
	err := r.q.QueryRow(context.Background(),
		`SELECT id, product_id, name FROM boms WHERE product_id = $1`, productID,
	).Scan(&b.ID, &b.ProductID, &b.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom: %w", err)
	}
	return &b, nil
}

// UpdateName cambia el nombre del BOM.
func (r *BomRepo) UpdateName(bomID, name string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE boms SET name = $2 WHERE id = $1`, bomID, name)
	if err != nil {
		return fmt.Errorf("update bom name: %w", err)
	}
	return nil
}

// LinesFor devuelve las líneas persistidas del BOM.
func (r *BomRepo) LinesFor(bomID string) ([]*entity.BomMaterial, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, bom_id, material_number, quantity, unit_measure_code
		 FROM bom_materials WHERE bom_id = $1`, bomID)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.BomMaterial
	for rows.Next() {
		var line entity.BomMaterial
		if err := rows.Scan(&line.ID, &line.BomID, &line.MaterialNumber, &line.Quantity, &line.UnitMeasureCode); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, &line)
	}
	return list, rows.Err()
}

// SaveLine hace upsert por ID: misma identidad de línea en los updates
// de la reconciliación, sin delete+recreate.
func (r *BomRepo) SaveLine(line *entity.BomMaterial) error {
	query := `
		INSERT INTO bom_materials (id, bom_id, material_number, quantity, unit_measure_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET quantity = EXCLUDED.quantity, unit_measure_code = EXCLUDED.unit_measure_code`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.BomID, line.MaterialNumber, line.Quantity, line.UnitMeasureCode,
	)
	if err != nil {
		return fmt.Errorf("save bom line: %w", err)
	}
	return nil
}

// DeleteLines borra las líneas indicadas.
func (r *BomRepo) DeleteLines(lines []*entity.BomMaterial) error {
	if len(lines) == 0 {
		return nil
	}
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID)
	}
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM bom_materials WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("delete bom lines: %w", err)
	}
	return nil
}

// CountLinesByMaterial cuenta las líneas que referencian al material.
func (r *BomRepo) CountLinesByMaterial(materialNumber string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM bom_materials WHERE material_number = $1`, materialNumber,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bom lines by material: %w", err)
	}
	return count, nil
}

// DeleteLinesByMaterial borra todas las líneas que referencian al
// material (previo a borrar el material del catálogo).
func (r *BomRepo) DeleteLinesByMaterial(materialNumber string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM bom_materials WHERE material_number = $1`, materialNumber)
	if err != nil {
		return fmt.Errorf("delete bom lines by material: %w", err)
	}
	return nil
}
