package entity

import "github.com/shopspring/decimal"

// Material es un material del catálogo, compartido entre BOMs.
// Su identidad es el número de material asignado por el llamador,
// no un id surrogate.
type Material struct {
	Number      string
	Description string
	Height      decimal.Decimal
	Width       decimal.Decimal
	Weight      decimal.Decimal
}
