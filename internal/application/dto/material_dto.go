package dto

import "github.com/shopspring/decimal"

// CreateMaterialRequest datos para crear un material del catálogo. El
// número de material lo asigna el llamador y es la identidad.
type CreateMaterialRequest struct {
	Number      string          `json:"number"`
	Description string          `json:"description"`
	Height      decimal.Decimal `json:"height"`
	Width       decimal.Decimal `json:"width"`
	Weight      decimal.Decimal `json:"weight"`
}

// UpdateMaterialRequest solo los atributos descriptivos/dimensionales;
// el número de material no cambia.
type UpdateMaterialRequest struct {
	Description *string          `json:"description,omitempty"`
	Height      *decimal.Decimal `json:"height,omitempty"`
	Width       *decimal.Decimal `json:"width,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
}

// MaterialResponse material en respuestas.
type MaterialResponse struct {
	Number      string          `json:"number"`
	Description string          `json:"description"`
	Height      decimal.Decimal `json:"height"`
	Width       decimal.Decimal `json:"width"`
	Weight      decimal.Decimal `json:"weight"`
}

// MaterialListResponse listado paginado de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
