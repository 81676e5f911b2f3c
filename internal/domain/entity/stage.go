package entity

import "github.com/drxproject/plm-api/internal/domain/lifecycle"

// Stage es una etapa del ciclo de vida, tal como está sembrada en la base.
// Inmutable una vez creada; el core la referencia, nunca la modifica.
type Stage struct {
	ID          string
	Name        lifecycle.Stage
	Description string
}
