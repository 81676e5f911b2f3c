package lifecycle

// Roles del sistema. Un usuario tiene un conjunto de estos.
const (
	RoleAdmin            = "admin"
	RoleDesigner         = "designer"
	RolePortfolioManager = "portfolio_manager"
	RoleSeller           = "seller"
	RoleUser             = "user" // rol base, sin permisos de etapa
)

// entryRoles: roles que habilitan ENTRAR a cada etapa, además de admin
// que siempre califica. Etapa fuera de la tabla = denegada por defecto.
var entryRoles = map[Stage][]string{
	Concept:     {RoleDesigner},
	Feasibility: {RoleDesigner, RolePortfolioManager},
	Projection:  {RoleDesigner, RolePortfolioManager},
	Production:  {RolePortfolioManager, RoleSeller},
	Retreat:     {RolePortfolioManager, RoleSeller},
	Standby:     {RolePortfolioManager},
	Cancel:      {}, // solo admin
}

// CanEnter indica si un conjunto de roles habilita entrar a la etapa
// destino. Basta con un rol que califique; admin califica para todas.
func CanEnter(roles []string, target Stage) bool {
	allowed, ok := entryRoles[target]
	if !ok {
		return false
	}
	if HasAny(roles, RoleAdmin) {
		return true
	}
	return HasAny(roles, allowed...)
}

// HasAny es la intersección de conjuntos usada por toda autorización:
// true si roles contiene al menos uno de wanted.
func HasAny(roles []string, wanted ...string) bool {
	for _, r := range roles {
		for _, w := range wanted {
			if r == w {
				return true
			}
		}
	}
	return false
}
