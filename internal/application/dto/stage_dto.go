package dto

import "time"

// OverrideStageRequest cuerpo de POST /products/:id/stage.
type OverrideStageRequest struct {
	Stage string `json:"stage"`
}

// StageResponse etapa actual de un producto.
type StageResponse struct {
	Stage string `json:"stage"`
}

// StageHistoryEntryResponse una entrada del historial de etapas.
type StageHistoryEntryResponse struct {
	ID           string    `json:"id"`
	Stage        string    `json:"stage"`
	StartOfStage time.Time `json:"start_of_stage"`
	UserID       string    `json:"user_id"`
}

// StageHistoryResponse historial completo, en orden ascendente.
type StageHistoryResponse struct {
	ProductID string                      `json:"product_id"`
	Entries   []StageHistoryEntryResponse `json:"entries"`
}
