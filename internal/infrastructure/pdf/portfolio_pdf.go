// Package pdf implementa la generación del reporte PDF del portafolio
// de productos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Etapa | Alto | Ancho | Peso | Líneas BOM  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/drxproject/plm-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPortfolioGenerator implementa report.PortfolioPDFGenerator
// usando Maroto v2.
type MarotoPortfolioGenerator struct{}

// NewMarotoPortfolioGenerator construye el generador.
func NewMarotoPortfolioGenerator() *MarotoPortfolioGenerator { return &MarotoPortfolioGenerator{} }

// GeneratePortfolioPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPortfolioGenerator) GeneratePortfolioPDF(items []report.PortfolioItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Portafolio de productos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, item := range items {
		m.AddRows(itemRow(item))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(items)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Portafolio de productos", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Top: 5, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header("Producto", 4),
		header("Etapa", 2),
		header("Alto (cm)", 2),
		header("Ancho (cm)", 2),
		header("Peso (kg)", 1),
		header("BOM", 1),
	)
}

func itemRow(item report.PortfolioItem) core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Top: 1, Align: a}))
	}
	stage := item.CurrentStage
	if stage == "" {
		stage = "—"
	}
	return row.New(6).Add(
		cell(item.Name, 4, align.Left),
		cell(stage, 2, align.Left),
		cell(item.EstimatedHeight.StringFixed(2), 2, align.Right),
		cell(item.EstimatedWidth.StringFixed(2), 2, align.Right),
		cell(item.EstimatedWeight.StringFixed(2), 1, align.Right),
		cell(fmt.Sprintf("%d", item.BomLines), 1, align.Right),
	)
}

func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total: %d productos", total), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
	)
}
