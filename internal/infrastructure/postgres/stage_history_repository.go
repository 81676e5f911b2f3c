package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
	"github.com/drxproject/plm-api/internal/domain/repository"
)

var _ repository.StageHistoryRepository = (*StageHistoryRepo)(nil)

// StageHistoryRepo implementación del ledger de etapas sobre PostgreSQL.
// Append-only: no hay UPDATE sobre stage_history. El orden total por
// producto es (start_of_stage, seq): seq es un BIGSERIAL que desempata
// timestamps idénticos de forma explícita.
type StageHistoryRepo struct {
	q Querier
}

// NewStageHistoryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStageHistoryRepository(q Querier) *StageHistoryRepo {
	return &StageHistoryRepo{q: q}
}

const historySelect = `
	SELECT h.id, h.product_id, h.stage_id, s.name, h.start_of_stage, h.user_id, h.seq
	FROM stage_history h
	JOIN stages s ON s.id = h.stage_id`

// Latest devuelve la última entrada del producto, o nil si no hay historial.
func (r *StageHistoryRepo) Latest(productID string) (*entity.StageHistoryEntry, error) {
	return r.nth(productID, 0)
}

// SecondLatest devuelve la penúltima entrada, o nil si hay menos de dos.
func (r *StageHistoryRepo) SecondLatest(productID string) (*entity.StageHistoryEntry, error) {
	return r.nth(productID, 1)
}

func (r *StageHistoryRepo) nth(productID string, offset int) (*entity.StageHistoryEntry, error) {
	query := historySelect + `
		WHERE h.product_id = $1
		ORDER BY h.start_of_stage DESC, h.seq DESC
		LIMIT 1 OFFSET $2`
	entry, err := scanHistoryRow(r.q.QueryRow(context.Background(), query, productID, offset))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get history entry: %w", err)
	}
	return entry, nil
}

// ListByProduct devuelve el historial completo en orden ascendente.
func (r *StageHistoryRepo) ListByProduct(productID string) ([]*entity.StageHistoryEntry, error) {
	query := historySelect + `
		WHERE h.product_id = $1
		ORDER BY h.start_of_stage, h.seq`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.StageHistoryEntry
	for rows.Next() {
		entry, err := scanHistoryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		list = append(list, entry)
	}
	return list, rows.Err()
}

// Append agrega una entrada al ledger. seq lo asigna la base.
func (r *StageHistoryRepo) Append(entry *entity.StageHistoryEntry) error {
	query := `
		INSERT INTO stage_history (id, product_id, stage_id, start_of_stage, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		entry.ID, entry.ProductID, entry.StageID, entry.StartOfStage, entry.UserID,
	).Scan(&entry.Seq)
	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

// DeleteByProduct borra todo el historial del producto (solo al borrar
// el producto: ninguna entrada queda huérfana).
func (r *StageHistoryRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stage_history WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return nil
}

// FindProductIDsByCurrentStage devuelve los productos cuya última
// entrada del ledger es la etapa dada.
func (r *StageHistoryRepo) FindProductIDsByCurrentStage(stage lifecycle.Stage) ([]string, error) {
	query := `
		SELECT h.product_id
		FROM stage_history h
		JOIN stages s ON s.id = h.stage_id
		WHERE s.name = $1
		  AND (h.start_of_stage, h.seq) = (
			SELECT h2.start_of_stage, h2.seq
			FROM stage_history h2
			WHERE h2.product_id = h.product_id
			ORDER BY h2.start_of_stage DESC, h2.seq DESC
			LIMIT 1
		  )`
	rows, err := r.q.Query(context.Background(), query, string(stage))
	if err != nil {
		return nil, fmt.Errorf("find products by current stage: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanHistoryRow(row pgx.Row) (*entity.StageHistoryEntry, error) {
	var e entity.StageHistoryEntry
	var rawStage string
	if err := row.Scan(&e.ID, &e.ProductID, &e.StageID, &rawStage, &e.StartOfStage, &e.UserID, &e.Seq); err != nil {
		return nil, err
	}
	e.Stage = lifecycle.Stage(rawStage)
	return &e, nil
}
