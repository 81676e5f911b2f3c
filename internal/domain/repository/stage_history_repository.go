package repository

import (
	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
)

// StageHistoryRepository es el puerto del ledger de etapas: append-only,
// las entradas nunca se modifican. El orden total por producto es
// (start_of_stage, seq).
type StageHistoryRepository interface {
	// Latest devuelve la última entrada del producto, o nil sin error si
	// el producto no tiene historial.
	Latest(productID string) (*entity.StageHistoryEntry, error)
	// SecondLatest devuelve la penúltima entrada, o nil si hay menos de dos.
	SecondLatest(productID string) (*entity.StageHistoryEntry, error)
	// ListByProduct devuelve el historial completo en orden ascendente.
	ListByProduct(productID string) ([]*entity.StageHistoryEntry, error)
	Append(entry *entity.StageHistoryEntry) error
	DeleteByProduct(productID string) error
	// FindProductIDsByCurrentStage devuelve los productos cuya ÚLTIMA
	// entrada del ledger es la etapa dada (listado por visibilidad de rol).
	FindProductIDsByCurrentStage(stage lifecycle.Stage) ([]string, error)
}
