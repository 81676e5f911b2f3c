package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drxproject/plm-api/internal/domain/lifecycle"
)

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo de etapas: la secuencia de avance es fija
// CONCEPT → FEASIBILITY → PROJECTION → PRODUCTION y las etapas laterales
// (RETREAT, STANDBY, CANCEL) no tienen sucesora.
// ──────────────────────────────────────────────────────────────────────────────

func TestNext_SecuenciaCompleta(t *testing.T) {
	cases := []struct {
		current lifecycle.Stage
		want    lifecycle.Stage
	}{
		{"", lifecycle.Concept}, // sin historial → CONCEPT
		{lifecycle.Concept, lifecycle.Feasibility},
		{lifecycle.Feasibility, lifecycle.Projection},
		{lifecycle.Projection, lifecycle.Production},
	}
	for _, c := range cases {
		next, ok := lifecycle.Next(c.current)
		assert.True(t, ok, "etapa %q debe tener sucesora", c.current)
		assert.Equal(t, c.want, next)
	}
}

func TestNext_SinSucesora(t *testing.T) {
	for _, s := range []lifecycle.Stage{
		lifecycle.Production, lifecycle.Retreat, lifecycle.Standby, lifecycle.Cancel,
	} {
		_, ok := lifecycle.Next(s)
		assert.False(t, ok, "etapa %q no debe tener sucesora", s)
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	s, ok := lifecycle.Parse("standby")
	assert.True(t, ok)
	assert.Equal(t, lifecycle.Standby, s)

	s, ok = lifecycle.Parse("  Cancel ")
	assert.True(t, ok)
	assert.Equal(t, lifecycle.Cancel, s)

	_, ok = lifecycle.Parse("SHIPPED")
	assert.False(t, ok, "nombre fuera del catálogo debe rechazarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de permisos: tabla de roles que habilitan entrar a cada etapa.
// Admin siempre califica; CANCEL es solo admin; basta un rol del conjunto.
// ──────────────────────────────────────────────────────────────────────────────

func TestCanEnter_TablaCompleta(t *testing.T) {
	cases := []struct {
		target  lifecycle.Stage
		allowed []string
		denied  []string
	}{
		{lifecycle.Concept,
			[]string{lifecycle.RoleDesigner},
			[]string{lifecycle.RolePortfolioManager, lifecycle.RoleSeller, lifecycle.RoleUser}},
		{lifecycle.Feasibility,
			[]string{lifecycle.RoleDesigner, lifecycle.RolePortfolioManager},
			[]string{lifecycle.RoleSeller, lifecycle.RoleUser}},
		{lifecycle.Projection,
			[]string{lifecycle.RoleDesigner, lifecycle.RolePortfolioManager},
			[]string{lifecycle.RoleSeller, lifecycle.RoleUser}},
		{lifecycle.Production,
			[]string{lifecycle.RolePortfolioManager, lifecycle.RoleSeller},
			[]string{lifecycle.RoleDesigner, lifecycle.RoleUser}},
		{lifecycle.Retreat,
			[]string{lifecycle.RolePortfolioManager, lifecycle.RoleSeller},
			[]string{lifecycle.RoleDesigner, lifecycle.RoleUser}},
		{lifecycle.Standby,
			[]string{lifecycle.RolePortfolioManager},
			[]string{lifecycle.RoleDesigner, lifecycle.RoleSeller, lifecycle.RoleUser}},
		{lifecycle.Cancel,
			nil,
			[]string{lifecycle.RoleDesigner, lifecycle.RolePortfolioManager, lifecycle.RoleSeller, lifecycle.RoleUser}},
	}
	for _, c := range cases {
		assert.True(t, lifecycle.CanEnter([]string{lifecycle.RoleAdmin}, c.target),
			"admin debe poder entrar a %q", c.target)
		for _, r := range c.allowed {
			assert.True(t, lifecycle.CanEnter([]string{r}, c.target),
				"rol %q debe poder entrar a %q", r, c.target)
		}
		for _, r := range c.denied {
			assert.False(t, lifecycle.CanEnter([]string{r}, c.target),
				"rol %q no debe poder entrar a %q", r, c.target)
		}
	}
}

func TestCanEnter_BastaUnRolDelConjunto(t *testing.T) {
	roles := []string{lifecycle.RoleUser, lifecycle.RoleSeller}
	assert.True(t, lifecycle.CanEnter(roles, lifecycle.Production))
	assert.False(t, lifecycle.CanEnter(roles, lifecycle.Standby))
}

func TestCanEnter_EtapaFueraDeTabla(t *testing.T) {
	assert.False(t, lifecycle.CanEnter([]string{lifecycle.RoleAdmin}, lifecycle.Stage("SHIPPED")),
		"etapa fuera de la tabla se deniega incluso para admin")
}

func TestHasAny(t *testing.T) {
	assert.True(t, lifecycle.HasAny([]string{"a", "b"}, "b", "c"))
	assert.False(t, lifecycle.HasAny([]string{"a"}, "b"))
	assert.False(t, lifecycle.HasAny(nil, "a"))
	assert.False(t, lifecycle.HasAny([]string{"a"}))
}
