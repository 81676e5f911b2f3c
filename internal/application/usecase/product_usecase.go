package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/drxproject/plm-api/internal/application/bom"
	"github.com/drxproject/plm-api/internal/application/dto"
	"github.com/drxproject/plm-api/internal/application/ports"
	"github.com/drxproject/plm-api/internal/domain"
	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
	"github.com/drxproject/plm-api/internal/domain/repository"
)

// ProductUseCase casos de uso de producto: CRUD, BOM embebido y listado
// filtrado por visibilidad de rol. Create/Update/Delete corren en una
// transacción; las lecturas van directo a los repos del pool.
type ProductUseCase struct {
	tx          ports.TxRunner
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	historyRepo repository.StageHistoryRepository
	bomRepo     repository.BomRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx ports.TxRunner, productRepo repository.ProductRepository, userRepo repository.UserRepository, historyRepo repository.StageHistoryRepository, bomRepo repository.BomRepository) *ProductUseCase {
	return &ProductUseCase{tx: tx, productRepo: productRepo, userRepo: userRepo, historyRepo: historyRepo, bomRepo: bomRepo}
}

// visibleStages: etapas cuyos productos puede ver cada rol (además de
// admin, que ve todos).
var visibleStages = map[string][]lifecycle.Stage{
	lifecycle.RoleDesigner:         {lifecycle.Concept, lifecycle.Feasibility, lifecycle.Projection},
	lifecycle.RolePortfolioManager: {lifecycle.Feasibility, lifecycle.Projection, lifecycle.Production, lifecycle.Retreat, lifecycle.Standby},
	lifecycle.RoleSeller:           {lifecycle.Production, lifecycle.Retreat},
}

// Create crea el producto con su BOM opcional y registra la entrada
// inicial CONCEPT en el ledger, todo en una transacción. Solo admin o
// designer pueden crear. Si algún material del BOM no existe en el
// catálogo la creación completa se rechaza (fail-fast, sin BOM parcial).
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || negative(in.EstimatedHeight) || negative(in.EstimatedWidth) || negative(in.EstimatedWeight) {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		user, err := r.Users.GetByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if !lifecycle.HasAny(user.Roles, lifecycle.RoleAdmin, lifecycle.RoleDesigner) {
			return domain.ErrForbidden
		}

		if in.Bom != nil {
			if err := bom.ValidateLines(r.Materials, in.Bom.Materials); err != nil {
				return err
			}
		}

		now := time.Now()
		product := &entity.Product{
			ID:              uuid.New().String(),
			Name:            in.Name,
			Description:     in.Description,
			EstimatedHeight: in.EstimatedHeight,
			EstimatedWidth:  in.EstimatedWidth,
			EstimatedWeight: in.EstimatedWeight,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := r.Products.Create(product); err != nil {
			return err
		}

		if in.Bom != nil {
			b := &entity.Bom{ID: uuid.New().String(), ProductID: product.ID, Name: in.Bom.Name}
			if err := r.Boms.Create(b); err != nil {
				return err
			}
			for _, line := range in.Bom.Materials {
				if err := r.Boms.SaveLine(&entity.BomMaterial{
					ID:              uuid.New().String(),
					BomID:           b.ID,
					MaterialNumber:  line.MaterialNumber,
					Quantity:        line.Quantity,
					UnitMeasureCode: line.UnitMeasureCode,
				}); err != nil {
					return err
				}
			}
			product.Bom = b
		}

		// Entrada inicial del ledger: el producto nace en CONCEPT por
		// acción explícita del creador.
		concept, err := r.Stages.GetByName(lifecycle.Concept)
		if err != nil {
			return err
		}
		if concept == nil {
			return domain.ErrUnknownStage
		}
		if err := r.History.Append(&entity.StageHistoryEntry{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			StageID:      concept.ID,
			Stage:        concept.Name,
			StartOfStage: now,
			UserID:       user.ID,
		}); err != nil {
			return err
		}

		if product.Bom != nil {
			lines, err := r.Boms.LinesFor(product.Bom.ID)
			if err != nil {
				return err
			}
			product.Bom.Materials = lines
		}
		out = toProductResponse(product, string(lifecycle.Concept))
		return nil
	})
	return out, err
}

// GetByID obtiene un producto con su BOM y su etapa actual derivada.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.attachBom(product); err != nil {
		return nil, err
	}
	stage, err := uc.currentStageName(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, stage), nil
}

// Update actualiza atributos del producto y reconcilia su BOM contra el
// enviado, en una transacción. Enviar BOM sin líneas vacía el BOM; no
// enviar BOM también (la ausencia significa "sin líneas", no "sin cambio").
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		product, err := r.Products.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.EstimatedHeight != nil {
			product.EstimatedHeight = *in.EstimatedHeight
		}
		if in.EstimatedWidth != nil {
			product.EstimatedWidth = *in.EstimatedWidth
		}
		if in.EstimatedWeight != nil {
			product.EstimatedWeight = *in.EstimatedWeight
		}
		if product.Name == "" || negative(product.EstimatedHeight) || negative(product.EstimatedWidth) || negative(product.EstimatedWeight) {
			return domain.ErrInvalidInput
		}
		product.UpdatedAt = time.Now()
		if err := r.Products.Update(product); err != nil {
			return err
		}

		existing, err := r.Boms.GetByProduct(product.ID)
		if err != nil {
			return err
		}
		var submitted []dto.BomLineRequest
		if in.Bom != nil {
			submitted = in.Bom.Materials
		}
		switch {
		case existing != nil:
			if in.Bom != nil && in.Bom.Name != existing.Name {
				if err := r.Boms.UpdateName(existing.ID, in.Bom.Name); err != nil {
					return err
				}
				existing.Name = in.Bom.Name
			}
			if err := bom.Reconcile(r.Boms, r.Materials, existing.ID, submitted); err != nil {
				return err
			}
			product.Bom = existing
		case in.Bom != nil:
			b := &entity.Bom{ID: uuid.New().String(), ProductID: product.ID, Name: in.Bom.Name}
			if err := r.Boms.Create(b); err != nil {
				return err
			}
			if err := bom.Reconcile(r.Boms, r.Materials, b.ID, submitted); err != nil {
				return err
			}
			product.Bom = b
		}

		if product.Bom != nil {
			lines, err := r.Boms.LinesFor(product.Bom.ID)
			if err != nil {
				return err
			}
			product.Bom.Materials = lines
		}

		latest, err := r.History.Latest(product.ID)
		if err != nil {
			return err
		}
		stage := ""
		if latest != nil {
			stage = string(latest.Stage)
		}
		out = toProductResponse(product, stage)
		return nil
	})
	return out, err
}

// List devuelve los productos visibles para el usuario: admin ve todos;
// los demás roles ven los productos cuya etapa ACTUAL está en su tabla
// de visibilidad (unión si el usuario tiene varios roles).
func (uc *ProductUseCase) List(userID string, limit, offset int) (*dto.ProductListResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	var products []*entity.Product
	if user.IsAdmin() {
		products, err = uc.productRepo.List(limit, offset)
		if err != nil {
			return nil, err
		}
	} else {
		seen := make(map[lifecycle.Stage]bool)
		var ids []string
		for _, role := range user.Roles {
			for _, s := range visibleStages[role] {
				if seen[s] {
					continue
				}
				seen[s] = true
				found, err := uc.historyRepo.FindProductIDsByCurrentStage(s)
				if err != nil {
					return nil, err
				}
				ids = append(ids, found...)
			}
		}
		if len(ids) == 0 {
			return nil, domain.ErrForbidden
		}
		products, err = uc.productRepo.GetByIDs(ids)
		if err != nil {
			return nil, err
		}
		products = page(products, limit, offset)
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		if err := uc.attachBom(p); err != nil {
			return nil, err
		}
		stage, err := uc.currentStageName(p.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toProductResponse(p, stage))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// Delete elimina el producto (solo admin). Primero borra su historial de
// etapas para no dejar entradas huérfanas; el BOM cae en cascada.
func (uc *ProductUseCase) Delete(ctx context.Context, id, userID string) error {
	return uc.tx.Run(ctx, func(r ports.TxRepos) error {
		user, err := r.Users.GetByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if !user.IsAdmin() {
			return domain.ErrForbidden
		}
		product, err := r.Products.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := r.History.DeleteByProduct(product.ID); err != nil {
			return err
		}
		return r.Products.Delete(product.ID)
	})
}

func (uc *ProductUseCase) attachBom(product *entity.Product) error {
	b, err := uc.bomRepo.GetByProduct(product.ID)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}
	lines, err := uc.bomRepo.LinesFor(b.ID)
	if err != nil {
		return err
	}
	b.Materials = lines
	product.Bom = b
	return nil
}

func (uc *ProductUseCase) currentStageName(productID string) (string, error) {
	latest, err := uc.historyRepo.Latest(productID)
	if err != nil {
		return "", err
	}
	if latest == nil {
		return "", nil
	}
	return string(latest.Stage), nil
}

// page aplica limit/offset sobre la lista ya resuelta. El listado
// no-admin se resuelve por IDs de etapa visible, así que la paginación
// se aplica en memoria con la misma semántica que el listado admin.
func page(products []*entity.Product, limit, offset int) []*entity.Product {
	if offset >= len(products) {
		return nil
	}
	products = products[offset:]
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products
}

func negative(d decimal.Decimal) bool {
	return d.IsNegative()
}

func toProductResponse(p *entity.Product, currentStage string) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	resp := &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		EstimatedHeight: p.EstimatedHeight,
		EstimatedWidth:  p.EstimatedWidth,
		EstimatedWeight: p.EstimatedWeight,
		CurrentStage:    currentStage,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Bom != nil {
		b := &dto.BomResponse{ID: p.Bom.ID, Name: p.Bom.Name, Materials: make([]dto.BomLineResponse, 0, len(p.Bom.Materials))}
		for _, line := range p.Bom.Materials {
			b.Materials = append(b.Materials, dto.BomLineResponse{
				ID:              line.ID,
				MaterialNumber:  line.MaterialNumber,
				Quantity:        line.Quantity,
				UnitMeasureCode: line.UnitMeasureCode,
			})
		}
		resp.Bom = b
	}
	return resp
}
