// Package stage implementa el motor de transición de etapas: avance
// secuencial y override administrativo sobre el ledger append-only.
package stage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/drxproject/plm-api/internal/application/dto"
	"github.com/drxproject/plm-api/internal/application/ports"
	"github.com/drxproject/plm-api/internal/domain"
	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
	"github.com/drxproject/plm-api/internal/domain/repository"
)

// TransitionUseCase orquesta Advance y Override. Cada llamada corre en
// una sola transacción con la fila del producto bloqueada, así las
// lecturas de "última" y "penúltima" entrada nunca compiten con un
// append concurrente sobre el mismo producto.
type TransitionUseCase struct {
	tx          ports.TxRunner
	productRepo repository.ProductRepository
	historyRepo repository.StageHistoryRepository
}

// NewTransitionUseCase construye el motor de transición.
func NewTransitionUseCase(tx ports.TxRunner, productRepo repository.ProductRepository, historyRepo repository.StageHistoryRepository) *TransitionUseCase {
	return &TransitionUseCase{tx: tx, productRepo: productRepo, historyRepo: historyRepo}
}

// Advance mueve el producto a su etapa siguiente fija. Un producto sin
// historial avanza a CONCEPT. Falla con ErrNoNextStage si la etapa
// actual no tiene sucesora y con ErrPermissionDenied si los roles del
// actor no habilitan la etapa destino.
func (uc *TransitionUseCase) Advance(ctx context.Context, productID, userID string) (*dto.StageResponse, error) {
	var out *dto.StageResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		product, user, err := resolveActors(r, productID, userID)
		if err != nil {
			return err
		}

		latest, err := r.History.Latest(product.ID)
		if err != nil {
			return err
		}
		var current lifecycle.Stage
		if latest != nil {
			current = latest.Stage
		}

		next, ok := lifecycle.Next(current)
		if !ok {
			return domain.ErrNoNextStage
		}
		if !lifecycle.CanEnter(user.Roles, next) {
			return domain.ErrPermissionDenied
		}

		if err := appendEntry(r, product.ID, user.ID, next); err != nil {
			return err
		}
		out = &dto.StageResponse{Stage: string(next)}
		return nil
	})
	return out, err
}

// Override fija la etapa del producto por decisión administrativa.
// Guardas, en este orden y antes del chequeo de permisos:
//  1. CANCEL es terminal: ningún actor puede modificar un producto cancelado.
//  2. STANDBY solo puede volver exactamente a su etapa anterior.
func (uc *TransitionUseCase) Override(ctx context.Context, productID, stageName, userID string) (*dto.StageResponse, error) {
	target, ok := lifecycle.Parse(stageName)
	if !ok {
		return nil, domain.ErrUnknownStage
	}

	var out *dto.StageResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		product, user, err := resolveActors(r, productID, userID)
		if err != nil {
			return err
		}

		latest, err := r.History.Latest(product.ID)
		if err != nil {
			return err
		}
		if latest != nil {
			if latest.Stage == lifecycle.Cancel {
				return domain.ErrProductCancelled
			}
			if latest.Stage == lifecycle.Standby {
				previous, err := r.History.SecondLatest(product.ID)
				if err != nil {
					return err
				}
				if previous == nil || previous.Stage != target {
					return domain.ErrStandbyRestriction
				}
			}
		}

		if !lifecycle.CanEnter(user.Roles, target) {
			return domain.ErrPermissionDenied
		}

		if err := appendEntry(r, product.ID, user.ID, target); err != nil {
			return err
		}
		out = &dto.StageResponse{Stage: string(target)}
		return nil
	})
	return out, err
}

// CurrentStage deriva la etapa actual del ledger. Distingue producto
// inexistente (ErrNotFound) de producto sin historial (ErrNoHistory):
// CONCEPT solo se asigna por un Advance/Override explícito.
func (uc *TransitionUseCase) CurrentStage(productID string) (*dto.StageResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	latest, err := uc.historyRepo.Latest(productID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, domain.ErrNoHistory
	}
	return &dto.StageResponse{Stage: string(latest.Stage)}, nil
}

// History devuelve el historial completo del producto en orden ascendente.
func (uc *TransitionUseCase) History(productID string) (*dto.StageHistoryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.historyRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := &dto.StageHistoryResponse{ProductID: productID, Entries: make([]dto.StageHistoryEntryResponse, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.StageHistoryEntryResponse{
			ID:           e.ID,
			Stage:        string(e.Stage),
			StartOfStage: e.StartOfStage,
			UserID:       e.UserID,
		})
	}
	return out, nil
}

// resolveActors carga y valida producto (con lock de fila) y usuario.
func resolveActors(r ports.TxRepos, productID, userID string) (*entity.Product, *entity.User, error) {
	product, err := r.Products.GetByIDForUpdate(productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	user, err := r.Users.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrUserNotFound
	}
	return product, user, nil
}

// appendEntry agrega la entrada inmutable al ledger. Única mutación de
// una transición: las entradas existentes nunca se tocan.
func appendEntry(r ports.TxRepos, productID, userID string, target lifecycle.Stage) error {
	st, err := r.Stages.GetByName(target)
	if err != nil {
		return err
	}
	if st == nil {
		return domain.ErrUnknownStage
	}
	return r.History.Append(&entity.StageHistoryEntry{
		ID:           uuid.New().String(),
		ProductID:    productID,
		StageID:      st.ID,
		Stage:        st.Name,
		StartOfStage: time.Now(),
		UserID:       userID,
	})
}
