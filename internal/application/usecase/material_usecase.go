package usecase

import (
	"context"

	"github.com/drxproject/plm-api/internal/application/dto"
	"github.com/drxproject/plm-api/internal/application/ports"
	"github.com/drxproject/plm-api/internal/domain"
	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/repository"
)

// MaterialUseCase CRUD del catálogo de materiales. El número de material
// es la identidad y nunca cambia. Delete corre en una transacción; el
// resto son operaciones de una sola escritura sobre los repos del pool.
type MaterialUseCase struct {
	tx           ports.TxRunner
	materialRepo repository.MaterialRepository
	bomRepo      repository.BomRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(tx ports.TxRunner, materialRepo repository.MaterialRepository, bomRepo repository.BomRepository) *MaterialUseCase {
	return &MaterialUseCase{tx: tx, materialRepo: materialRepo, bomRepo: bomRepo}
}

// Create registra un material nuevo en el catálogo.
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Number == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.materialRepo.GetByNumber(in.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	material := &entity.Material{
		Number:      in.Number,
		Description: in.Description,
		Height:      in.Height,
		Width:       in.Width,
		Weight:      in.Weight,
	}
	if err := uc.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByNumber obtiene un material por su número.
func (uc *MaterialUseCase) GetByNumber(number string) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByNumber(number)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrMaterialNotFound
	}
	return toMaterialResponse(material), nil
}

// List lista materiales con paginación.
func (uc *MaterialUseCase) List(limit, offset int) (*dto.MaterialListResponse, error) {
	list, err := uc.materialRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update modifica los atributos descriptivos/dimensionales del material.
func (uc *MaterialUseCase) Update(number string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByNumber(number)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrMaterialNotFound
	}
	if in.Description != nil {
		material.Description = *in.Description
	}
	if in.Height != nil {
		material.Height = *in.Height
	}
	if in.Width != nil {
		material.Width = *in.Width
	}
	if in.Weight != nil {
		material.Weight = *in.Weight
	}
	if err := uc.materialRepo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Delete elimina un material del catálogo en una transacción: retira
// las líneas de BOM que lo referencian, borra el material y devuelve
// cuántas líneas se retiraron. Si algo falla no queda estado parcial.
func (uc *MaterialUseCase) Delete(ctx context.Context, number string) (int, error) {
	var removed int
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		material, err := r.Materials.GetByNumber(number)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrMaterialNotFound
		}
		removed, err = r.Boms.CountLinesByMaterial(number)
		if err != nil {
			return err
		}
		if err := r.Boms.DeleteLinesByMaterial(number); err != nil {
			return err
		}
		return r.Materials.Delete(number)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		Number:      m.Number,
		Description: m.Description,
		Height:      m.Height,
		Width:       m.Width,
		Weight:      m.Weight,
	}
}
