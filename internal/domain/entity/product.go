package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto manufacturado en desarrollo.
// Su etapa actual NO se guarda en el producto: se deriva siempre del
// historial de etapas (ledger append-only), que es la fuente de verdad.
type Product struct {
	ID              string
	Name            string
	Description     string
	EstimatedHeight decimal.Decimal // cm, no negativa
	EstimatedWidth  decimal.Decimal // cm, no negativa
	EstimatedWeight decimal.Decimal // kg, no negativa
	Bom             *Bom            // 1:1 opcional; el producto es el dueño
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
