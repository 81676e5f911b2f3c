package stage_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drxproject/plm-api/internal/application/ports"
	"github.com/drxproject/plm-api/internal/application/stage"
	"github.com/drxproject/plm-api/internal/domain"
	"github.com/drxproject/plm-api/internal/domain/entity"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mundo en memoria: productos, usuarios, catálogo de etapas y ledger
// ──────────────────────────────────────────────────────────────────────────────

type world struct {
	products map[string]*entity.Product
	users    map[string]*entity.User
	stages   map[lifecycle.Stage]*entity.Stage
	ledger   []*entity.StageHistoryEntry
	nextSeq  int64
}

func newWorld() *world {
	w := &world{
		products: make(map[string]*entity.Product),
		users:    make(map[string]*entity.User),
		stages:   make(map[lifecycle.Stage]*entity.Stage),
	}
	for _, name := range lifecycle.All() {
		w.stages[name] = &entity.Stage{ID: uuid.New().String(), Name: name}
	}
	return w
}

func (w *world) addProduct(id string) {
	w.products[id] = &entity.Product{ID: id, Name: "producto-" + id}
}

func (w *world) addUser(id string, roles ...string) {
	w.users[id] = &entity.User{ID: id, Email: id + "@test.local", Roles: roles}
}

// appendHistory siembra historial previo directamente en el ledger.
func (w *world) appendHistory(productID string, stages ...lifecycle.Stage) {
	base := time.Now().Add(-time.Hour)
	for i, s := range stages {
		w.nextSeq++
		w.ledger = append(w.ledger, &entity.StageHistoryEntry{
			ID:           uuid.New().String(),
			ProductID:    productID,
			StageID:      w.stages[s].ID,
			Stage:        s,
			StartOfStage: base.Add(time.Duration(i) * time.Minute),
			UserID:       "seed",
			Seq:          w.nextSeq,
		})
	}
}

// ordered devuelve el historial del producto en orden (StartOfStage, Seq).
func (w *world) ordered(productID string) []*entity.StageHistoryEntry {
	var out []*entity.StageHistoryEntry
	for _, e := range w.ledger {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartOfStage.Equal(out[j].StartOfStage) {
			return out[i].Seq < out[j].Seq
		}
		return out[i].StartOfStage.Before(out[j].StartOfStage)
	})
	return out
}

// Repos fake sobre el mundo compartido.

type worldProducts struct{ w *world }

func (r worldProducts) Create(*entity.Product) error { return nil }
func (r worldProducts) Update(*entity.Product) error { return nil }
func (r worldProducts) Delete(string) error          { return nil }
func (r worldProducts) GetByIDs([]string) ([]*entity.Product, error) {
	return nil, nil
}
func (r worldProducts) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r worldProducts) GetByID(id string) (*entity.Product, error) {
	return r.w.products[id], nil
}
func (r worldProducts) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.w.products[id], nil
}

type worldUsers struct{ w *world }

func (r worldUsers) Create(*entity.User) error                 { return nil }
func (r worldUsers) GetByEmail(string) (*entity.User, error)   { return nil, nil }
func (r worldUsers) List(int, int) ([]*entity.User, error)     { return nil, nil }
func (r worldUsers) ReplaceRoles(string, []string) error       { return nil }
func (r worldUsers) ExistsWithRole(string) (bool, error)       { return false, nil }
func (r worldUsers) Delete(string) error                       { return nil }
func (r worldUsers) GetByID(id string) (*entity.User, error)   { return r.w.users[id], nil }

type worldStages struct{ w *world }

func (r worldStages) Create(*entity.Stage) error          { return nil }
func (r worldStages) List() ([]*entity.Stage, error)      { return nil, nil }
func (r worldStages) ExistsByName(lifecycle.Stage) (bool, error) { return true, nil }
func (r worldStages) GetByName(name lifecycle.Stage) (*entity.Stage, error) {
	return r.w.stages[name], nil
}

type worldHistory struct{ w *world }

func (r worldHistory) Latest(productID string) (*entity.StageHistoryEntry, error) {
	entries := r.w.ordered(productID)
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[len(entries)-1], nil
}

func (r worldHistory) SecondLatest(productID string) (*entity.StageHistoryEntry, error) {
	entries := r.w.ordered(productID)
	if len(entries) < 2 {
		return nil, nil
	}
	return entries[len(entries)-2], nil
}

func (r worldHistory) ListByProduct(productID string) ([]*entity.StageHistoryEntry, error) {
	return r.w.ordered(productID), nil
}

func (r worldHistory) Append(entry *entity.StageHistoryEntry) error {
	r.w.nextSeq++
	entry.Seq = r.w.nextSeq
	r.w.ledger = append(r.w.ledger, entry)
	return nil
}

func (r worldHistory) DeleteByProduct(string) error { return nil }
func (r worldHistory) FindProductIDsByCurrentStage(lifecycle.Stage) ([]string, error) {
	return nil, nil
}

type worldTx struct{ w *world }

func (t worldTx) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	return fn(ports.TxRepos{
		Products: worldProducts{t.w},
		Users:    worldUsers{t.w},
		Stages:   worldStages{t.w},
		History:  worldHistory{t.w},
	})
}

func newUseCase(w *world) *stage.TransitionUseCase {
	return stage.NewTransitionUseCase(worldTx{w}, worldProducts{w}, worldHistory{w})
}

// ──────────────────────────────────────────────────────────────────────────────
// Advance
// ──────────────────────────────────────────────────────────────────────────────

// Producto sin historial: el primer avance lo lleva a CONCEPT.
func TestAdvance_SinHistorialEntraAConcepto(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("u1", lifecycle.RoleDesigner)
	uc := newUseCase(w)

	out, err := uc.Advance(context.Background(), "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "CONCEPT", out.Stage)

	entries := w.ordered("p1")
	require.Len(t, entries, 1)
	assert.Equal(t, lifecycle.Concept, entries[0].Stage)
	assert.Equal(t, "u1", entries[0].UserID)
}

// Secuencia completa: CONCEPT → FEASIBILITY → PROJECTION → PRODUCTION.
func TestAdvance_SecuenciaCompletaComoAdmin(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("root", lifecycle.RoleAdmin)
	uc := newUseCase(w)

	want := []string{"CONCEPT", "FEASIBILITY", "PROJECTION", "PRODUCTION"}
	for _, expected := range want {
		out, err := uc.Advance(context.Background(), "p1", "root")
		require.NoError(t, err)
		assert.Equal(t, expected, out.Stage)
	}
	assert.Len(t, w.ordered("p1"), 4, "cada avance agrega exactamente una entrada")
}

// PRODUCTION no tiene sucesora.
func TestAdvance_DesdeProduccionNoHaySucesora(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("root", lifecycle.RoleAdmin)
	w.appendHistory("p1", lifecycle.Concept, lifecycle.Feasibility, lifecycle.Projection, lifecycle.Production)
	uc := newUseCase(w)

	_, err := uc.Advance(context.Background(), "p1", "root")
	assert.ErrorIs(t, err, domain.ErrNoNextStage)
	assert.Len(t, w.ordered("p1"), 4, "un avance fallido no escribe en el ledger")
}

// El permiso se evalúa contra la etapa DESTINO: un seller no puede
// llevar un producto de CONCEPT a FEASIBILITY.
func TestAdvance_PermisoSobreEtapaDestino(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("vendedor", lifecycle.RoleSeller)
	w.appendHistory("p1", lifecycle.Concept)
	uc := newUseCase(w)

	_, err := uc.Advance(context.Background(), "p1", "vendedor")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	// El mismo seller sí puede entrar a PRODUCTION desde PROJECTION.
	w.appendHistory("p1", lifecycle.Feasibility, lifecycle.Projection)
	out, err := uc.Advance(context.Background(), "p1", "vendedor")
	require.NoError(t, err)
	assert.Equal(t, "PRODUCTION", out.Stage)
}

// El rol base no habilita ninguna etapa.
func TestAdvance_RolBaseDenegado(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("u1", lifecycle.RoleUser)
	uc := newUseCase(w)

	_, err := uc.Advance(context.Background(), "p1", "u1")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestAdvance_ProductoInexistente(t *testing.T) {
	w := newWorld()
	w.addUser("u1", lifecycle.RoleAdmin)
	uc := newUseCase(w)

	_, err := uc.Advance(context.Background(), "no-existe", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdvance_UsuarioInexistente(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	uc := newUseCase(w)

	_, err := uc.Advance(context.Background(), "p1", "fantasma")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Override
// ──────────────────────────────────────────────────────────────────────────────

func TestOverride_EtapaDesconocida(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("root", lifecycle.RoleAdmin)
	uc := newUseCase(w)

	_, err := uc.Override(context.Background(), "p1", "LIMBO", "root")
	assert.ErrorIs(t, err, domain.ErrUnknownStage)
}

// El nombre de etapa se acepta sin distinguir mayúsculas.
func TestOverride_NombreCaseInsensitive(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("pm", lifecycle.RolePortfolioManager)
	w.appendHistory("p1", lifecycle.Concept)
	uc := newUseCase(w)

	out, err := uc.Override(context.Background(), "p1", "standby", "pm")
	require.NoError(t, err)
	assert.Equal(t, "STANDBY", out.Stage)
}

// CANCEL es terminal: ni siquiera admin saca a un producto cancelado.
func TestOverride_CancelEsTerminal(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("root", lifecycle.RoleAdmin)
	w.appendHistory("p1", lifecycle.Concept, lifecycle.Cancel)
	uc := newUseCase(w)

	_, err := uc.Override(context.Background(), "p1", "CONCEPT", "root")
	assert.ErrorIs(t, err, domain.ErrProductCancelled)

	_, err = uc.Advance(context.Background(), "p1", "root")
	require.Error(t, err, "un producto cancelado tampoco avanza")
}

// Solo admin puede cancelar.
func TestOverride_CancelSoloAdmin(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("pm", lifecycle.RolePortfolioManager)
	w.addUser("root", lifecycle.RoleAdmin)
	w.appendHistory("p1", lifecycle.Concept)
	uc := newUseCase(w)

	_, err := uc.Override(context.Background(), "p1", "CANCEL", "pm")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	out, err := uc.Override(context.Background(), "p1", "CANCEL", "root")
	require.NoError(t, err)
	assert.Equal(t, "CANCEL", out.Stage)
}

// Desde STANDBY solo se retoma exactamente la etapa previa.
func TestOverride_StandbySoloRetomaEtapaPrevia(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("root", lifecycle.RoleAdmin)
	w.appendHistory("p1", lifecycle.Concept, lifecycle.Feasibility, lifecycle.Standby)
	uc := newUseCase(w)

	_, err := uc.Override(context.Background(), "p1", "PRODUCTION", "root")
	assert.ErrorIs(t, err, domain.ErrStandbyRestriction)

	out, err := uc.Override(context.Background(), "p1", "FEASIBILITY", "root")
	require.NoError(t, err)
	assert.Equal(t, "FEASIBILITY", out.Stage)
}

// STANDBY como única entrada del ledger: no hay etapa previa que retomar.
func TestOverride_StandbySinEtapaPrevia(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("root", lifecycle.RoleAdmin)
	w.appendHistory("p1", lifecycle.Standby)
	uc := newUseCase(w)

	_, err := uc.Override(context.Background(), "p1", "CONCEPT", "root")
	assert.ErrorIs(t, err, domain.ErrStandbyRestriction)
}

// Las guardas de estado van antes que el permiso: un usuario sin roles
// sobre un producto cancelado recibe PRODUCT_CANCELLED, no permiso.
func TestOverride_GuardaDeEstadoAntesQuePermiso(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("u1", lifecycle.RoleUser)
	w.appendHistory("p1", lifecycle.Cancel)
	uc := newUseCase(w)

	_, err := uc.Override(context.Background(), "p1", "CONCEPT", "u1")
	assert.ErrorIs(t, err, domain.ErrProductCancelled)
}

// Un override repetido a la misma etapa agrega otra entrada: el ledger
// registra cada decisión, no estados distintos.
func TestOverride_RepetidoAgregaEntrada(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.addUser("pm", lifecycle.RolePortfolioManager)
	w.appendHistory("p1", lifecycle.Concept, lifecycle.Feasibility)
	uc := newUseCase(w)

	_, err := uc.Override(context.Background(), "p1", "PROJECTION", "pm")
	require.NoError(t, err)
	_, err = uc.Override(context.Background(), "p1", "PROJECTION", "pm")
	require.NoError(t, err)

	entries := w.ordered("p1")
	assert.Len(t, entries, 4)
	assert.Equal(t, lifecycle.Projection, entries[2].Stage)
	assert.Equal(t, lifecycle.Projection, entries[3].Stage)
}

// ──────────────────────────────────────────────────────────────────────────────
// CurrentStage / History
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrentStage_DistingueSinHistorialDeInexistente(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	uc := newUseCase(w)

	_, err := uc.CurrentStage("p1")
	assert.ErrorIs(t, err, domain.ErrNoHistory, "producto sin historial")

	_, err = uc.CurrentStage("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

func TestCurrentStage_UltimaEntradaDelLedger(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.appendHistory("p1", lifecycle.Concept, lifecycle.Feasibility, lifecycle.Standby)
	uc := newUseCase(w)

	out, err := uc.CurrentStage("p1")
	require.NoError(t, err)
	assert.Equal(t, "STANDBY", out.Stage)
}

// Mismo timestamp: gana la entrada con mayor seq, no el orden de llegada.
func TestCurrentStage_EmpateDeTimestampResueltoPorSeq(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	ts := time.Now()
	for _, s := range []lifecycle.Stage{lifecycle.Concept, lifecycle.Feasibility} {
		w.nextSeq++
		w.ledger = append(w.ledger, &entity.StageHistoryEntry{
			ID: uuid.New().String(), ProductID: "p1",
			StageID: w.stages[s].ID, Stage: s,
			StartOfStage: ts, UserID: "seed", Seq: w.nextSeq,
		})
	}
	uc := newUseCase(w)

	out, err := uc.CurrentStage("p1")
	require.NoError(t, err)
	assert.Equal(t, "FEASIBILITY", out.Stage)
}

func TestHistory_OrdenAscendenteCompleto(t *testing.T) {
	w := newWorld()
	w.addProduct("p1")
	w.appendHistory("p1", lifecycle.Concept, lifecycle.Feasibility, lifecycle.Standby, lifecycle.Feasibility)
	uc := newUseCase(w)

	out, err := uc.History("p1")
	require.NoError(t, err)
	require.Len(t, out.Entries, 4)
	assert.Equal(t, "CONCEPT", out.Entries[0].Stage)
	assert.Equal(t, "FEASIBILITY", out.Entries[1].Stage)
	assert.Equal(t, "STANDBY", out.Entries[2].Stage)
	assert.Equal(t, "FEASIBILITY", out.Entries[3].Stage)
}

func TestHistory_ProductoInexistente(t *testing.T) {
	w := newWorld()
	uc := newUseCase(w)

	_, err := uc.History("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
