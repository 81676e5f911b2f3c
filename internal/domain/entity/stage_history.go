package entity

import (
	"time"

	"github.com/drxproject/plm-api/internal/domain/lifecycle"
)

// StageHistoryEntry es un registro inmutable del ledger de etapas: el
// producto entró a Stage en StartOfStage por acción de UserID.
// Seq desempata entradas con el mismo timestamp: el orden total por
// producto es (StartOfStage, Seq), nunca el orden físico de inserción.
type StageHistoryEntry struct {
	ID           string
	ProductID    string
	StageID      string
	Stage        lifecycle.Stage
	StartOfStage time.Time
	UserID       string
	Seq          int64
}
