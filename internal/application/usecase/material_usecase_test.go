package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drxproject/plm-api/internal/application/dto"
	"github.com/drxproject/plm-api/internal/application/ports"
	"github.com/drxproject/plm-api/internal/application/usecase"
	"github.com/drxproject/plm-api/internal/domain"
	"github.com/drxproject/plm-api/internal/domain/entity"
)

func newMaterialUC(s *store) *usecase.MaterialUseCase {
	return usecase.NewMaterialUseCase(memTx{s}, memMaterials{s}, memBoms{s})
}

func (s *store) addBomLine(bomID, materialNumber string) {
	if _, ok := s.boms[bomID]; !ok {
		s.boms[bomID] = &entity.Bom{ID: bomID, ProductID: uuid.New().String(), Name: "v1"}
	}
	id := uuid.New().String()
	s.bomLines[id] = &entity.BomMaterial{ID: id, BomID: bomID, MaterialNumber: materialNumber, Quantity: 1, UnitMeasureCode: "EA"}
}

// brokenDeleteMaterials simula un fallo de infraestructura en el DELETE
// del catálogo; el resto de operaciones se comporta normal.
type brokenDeleteMaterials struct{ memMaterials }

func (brokenDeleteMaterials) Delete(string) error { return errors.New("conexión perdida") }

// atomicTx emula la semántica transaccional real sobre el store en
// memoria: si fn falla, restaura el estado previo de materiales y
// líneas de BOM. El DELETE del catálogo siempre falla (ver
// brokenDeleteMaterials), que es el escenario bajo prueba.
type atomicTx struct{ s *store }

func (t atomicTx) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	lines := make(map[string]*entity.BomMaterial, len(t.s.bomLines))
	for id, l := range t.s.bomLines {
		cp := *l
		lines[id] = &cp
	}
	mats := make(map[string]*entity.Material, len(t.s.materials))
	for n, m := range t.s.materials {
		cp := *m
		mats[n] = &cp
	}
	err := fn(ports.TxRepos{
		Products:  memProducts{t.s},
		Users:     memUsers{t.s},
		Stages:    memStages{t.s},
		History:   memHistory{t.s},
		Boms:      memBoms{t.s},
		Materials: brokenDeleteMaterials{memMaterials{t.s}},
	})
	if err != nil {
		t.s.bomLines = lines
		t.s.materials = mats
	}
	return err
}

func TestMaterialCreate_YDuplicado(t *testing.T) {
	s := newStore()
	uc := newMaterialUC(s)

	out, err := uc.Create(dto.CreateMaterialRequest{Number: "M1", Description: "tornillo", Weight: dec("0.01")})
	require.NoError(t, err)
	assert.Equal(t, "M1", out.Number)

	_, err = uc.Create(dto.CreateMaterialRequest{Number: "M1", Description: "otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMaterialCreate_EntradaInvalida(t *testing.T) {
	s := newStore()
	uc := newMaterialUC(s)

	_, err := uc.Create(dto.CreateMaterialRequest{Number: "", Description: "sin número"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaterialGetByNumber_Inexistente(t *testing.T) {
	s := newStore()
	uc := newMaterialUC(s)

	_, err := uc.GetByNumber("M404")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestMaterialUpdate_SoloCamposEnviados(t *testing.T) {
	s := newStore()
	s.materials["M1"] = &entity.Material{Number: "M1", Description: "tornillo", Weight: dec("0.01")}
	uc := newMaterialUC(s)

	desc := "tornillo M6"
	out, err := uc.Update("M1", dto.UpdateMaterialRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "tornillo M6", out.Description)
	assert.Equal(t, dec("0.01").String(), out.Weight.String(), "campo no enviado no cambia")
}

func TestMaterialUpdate_Inexistente(t *testing.T) {
	s := newStore()
	uc := newMaterialUC(s)

	desc := "no importa"
	_, err := uc.Update("M404", dto.UpdateMaterialRequest{Description: &desc})
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestMaterialDelete_RetiraLineasDeBomYReportaCuantas(t *testing.T) {
	s := newStore()
	s.addMaterial("M1")
	s.addMaterial("M2")
	s.addBomLine("b1", "M1")
	s.addBomLine("b1", "M2")
	s.addBomLine("b2", "M1")
	uc := newMaterialUC(s)

	removed, err := uc.Delete(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Nil(t, s.materials["M1"])
	for _, l := range s.bomLines {
		assert.NotEqual(t, "M1", l.MaterialNumber, "ninguna línea debe seguir referenciando M1")
	}
	assert.NotNil(t, s.materials["M2"], "otros materiales no se tocan")
}

func TestMaterialDelete_Inexistente(t *testing.T) {
	s := newStore()
	uc := newMaterialUC(s)

	_, err := uc.Delete(context.Background(), "M404")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestMaterialDelete_FalloEnCatalogoNoDejaEstadoParcial(t *testing.T) {
	s := newStore()
	s.addMaterial("M1")
	s.addBomLine("b1", "M1")
	uc := usecase.NewMaterialUseCase(atomicTx{s}, memMaterials{s}, memBoms{s})

	_, err := uc.Delete(context.Background(), "M1")
	require.Error(t, err)
	assert.NotNil(t, s.materials["M1"], "el material sigue en el catálogo")
	assert.Len(t, s.bomLines, 1, "las líneas de BOM no deben perderse si la transacción falla")
}
