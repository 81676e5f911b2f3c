package ports

import (
	"context"

	"github.com/drxproject/plm-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Products  repository.ProductRepository
	Users     repository.UserRepository
	Stages    repository.StageRepository
	History   repository.StageHistoryRepository
	Boms      repository.BomRepository
	Materials repository.MaterialRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Si fn retorna error se hace rollback
// completo: ninguna operación del core deja escrituras parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
