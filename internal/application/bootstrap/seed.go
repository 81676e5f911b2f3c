// Package bootstrap siembra los datos mínimos al arrancar: el catálogo
// fijo de etapas y el primer usuario admin. Idempotente: se puede correr
// en cada arranque sin duplicar nada.
package bootstrap

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
	"github.com/drxproject/plm-api/internal/domain/repository"
	"github.com/drxproject/plm-api/pkg/logger"
)

// AdminConfig credenciales del primer admin (desde configuración).
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// Seeder siembra etapas y admin inicial.
type Seeder struct {
	stageRepo repository.StageRepository
	userRepo  repository.UserRepository
	log       *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(stageRepo repository.StageRepository, userRepo repository.UserRepository, log *logger.Logger) *Seeder {
	return &Seeder{stageRepo: stageRepo, userRepo: userRepo, log: log}
}

var stageDescriptions = map[lifecycle.Stage]string{
	lifecycle.Concept:     "Responsible for generating ideas and defining the vision for a new product. This stage focuses on brainstorming, identifying market needs, and outlining potential product features.",
	lifecycle.Feasibility: "Evaluates the technical, economic, and commercial viability of the proposed product. This role ensures that the product can be realistically developed, manufactured, and sold at a sustainable cost.",
	lifecycle.Projection:  "Responsible for designing the technical details and specifications of the product. This includes creating blueprints, selecting materials, and defining production processes to ensure the product meets quality and performance standards.",
	lifecycle.Production:  "Handles the actual manufacturing of the product according to the established specifications. This stage involves assembling components, quality control, and ensuring efficient production workflows.",
	lifecycle.Retreat:     "Manages the gradual removal of the product from the market at the end of its lifecycle. This includes discontinuing manufacturing, handling remaining stock, and transitioning customers to alternative products if necessary.",
	lifecycle.Standby:     "Oversees the temporary suspension of a product without permanently discontinuing it. This can be due to market conditions, supply chain issues, or strategic business decisions.",
	lifecycle.Cancel:      "Responsible for the complete termination of the products development or production. This happens when the product is deemed unfeasible, unprofitable, or no longer aligns with business goals.",
}

// Run siembra las 7 etapas y crea el admin si no existe ninguno.
func (s *Seeder) Run(admin AdminConfig) error {
	for _, name := range lifecycle.All() {
		exists, err := s.stageRepo.ExistsByName(name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		stage := &entity.Stage{
			ID:          uuid.New().String(),
			Name:        name,
			Description: stageDescriptions[name],
		}
		if err := s.stageRepo.Create(stage); err != nil {
			return err
		}
		s.log.Info().Str("stage", string(name)).Msg("etapa sembrada")
	}
	return s.createAdminIfMissing(admin)
}

func (s *Seeder) createAdminIfMissing(admin AdminConfig) error {
	exists, err := s.userRepo.ExistsWithRole(lifecycle.RoleAdmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        admin.Email,
		PasswordHash: string(hash),
		Name:         admin.Name,
		Roles:        []string{lifecycle.RoleAdmin},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return err
	}
	s.log.Info().Str("email", admin.Email).Msg("usuario admin inicial creado")
	return nil
}
