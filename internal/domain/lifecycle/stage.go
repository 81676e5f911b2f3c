// Package lifecycle contiene la lógica pura del ciclo de vida de producto:
// el catálogo fijo de etapas, la función de etapa siguiente y la política
// de permisos por etapa. Sin dependencias externas ni acceso a datos.
package lifecycle

import "strings"

// Stage es el nombre enumerado de una etapa del ciclo de vida.
type Stage string

// Las 7 etapas fijas. CONCEPT→FEASIBILITY→PROJECTION→PRODUCTION es la
// secuencia de avance; RETREAT, STANDBY y CANCEL solo se alcanzan por
// override explícito.
const (
	Concept     Stage = "CONCEPT"
	Feasibility Stage = "FEASIBILITY"
	Projection  Stage = "PROJECTION"
	Production  Stage = "PRODUCTION"
	Retreat     Stage = "RETREAT"
	Standby     Stage = "STANDBY"
	Cancel      Stage = "CANCEL"
)

// All devuelve las etapas en orden de siembra.
func All() []Stage {
	return []Stage{Concept, Feasibility, Projection, Production, Retreat, Standby, Cancel}
}

// Parse convierte un nombre (case-insensitive) en Stage. ok=false si no
// corresponde a ninguna de las 7 etapas.
func Parse(name string) (Stage, bool) {
	s := Stage(strings.ToUpper(strings.TrimSpace(name)))
	switch s {
	case Concept, Feasibility, Projection, Production, Retreat, Standby, Cancel:
		return s, true
	}
	return "", false
}

// Next devuelve la etapa siguiente del avance secuencial. ok=false si la
// etapa actual no tiene sucesora (PRODUCTION y todas las etapas laterales).
// Con current=="" (producto sin historial) la siguiente es CONCEPT.
func Next(current Stage) (Stage, bool) {
	switch current {
	case "":
		return Concept, true
	case Concept:
		return Feasibility, true
	case Feasibility:
		return Projection, true
	case Projection:
		return Production, true
	}
	return "", false
}
