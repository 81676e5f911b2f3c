package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BomLineRequest una línea del BOM enviada por el cliente. El número de
// material es la clave de reconciliación; una entrada sin número se ignora.
type BomLineRequest struct {
	MaterialNumber  string `json:"material_number"`
	Quantity        int    `json:"quantity"`
	UnitMeasureCode string `json:"unit_measure_code"`
}

// BomRequest BOM embebido en creación/actualización de producto.
type BomRequest struct {
	Name      string           `json:"name"`
	Materials []BomLineRequest `json:"materials"`
}

// CreateProductRequest datos para crear un producto. El BOM es opcional;
// si viene, todos sus materiales deben existir en el catálogo.
type CreateProductRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	EstimatedHeight decimal.Decimal `json:"estimated_height"`
	EstimatedWidth  decimal.Decimal `json:"estimated_width"`
	EstimatedWeight decimal.Decimal `json:"estimated_weight"`
	Bom             *BomRequest     `json:"bom,omitempty"`
}

// UpdateProductRequest datos para actualizar un producto. El BOM enviado
// se reconcilia contra el persistido; una lista vacía vacía el BOM.
type UpdateProductRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	EstimatedHeight *decimal.Decimal `json:"estimated_height,omitempty"`
	EstimatedWidth  *decimal.Decimal `json:"estimated_width,omitempty"`
	EstimatedWeight *decimal.Decimal `json:"estimated_weight,omitempty"`
	Bom             *BomRequest      `json:"bom,omitempty"`
}

// BomLineResponse línea del BOM en respuestas.
type BomLineResponse struct {
	ID              string `json:"id"`
	MaterialNumber  string `json:"material_number"`
	Quantity        int    `json:"quantity"`
	UnitMeasureCode string `json:"unit_measure_code"`
}

// BomResponse BOM en respuestas.
type BomResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Materials []BomLineResponse `json:"materials"`
}

// ProductResponse producto en respuestas. CurrentStage viene del ledger y
// puede estar vacío si el producto aún no tiene historial.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	EstimatedHeight decimal.Decimal `json:"estimated_height"`
	EstimatedWidth  decimal.Decimal `json:"estimated_width"`
	EstimatedWeight decimal.Decimal `json:"estimated_weight"`
	CurrentStage    string          `json:"current_stage,omitempty"`
	Bom             *BomResponse    `json:"bom,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
