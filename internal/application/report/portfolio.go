// Package report genera la representación PDF del portafolio de
// productos visible para el usuario.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/drxproject/plm-api/internal/application/usecase"
)

// PortfolioItem una fila del reporte.
type PortfolioItem struct {
	Name            string
	Description     string
	CurrentStage    string
	EstimatedHeight decimal.Decimal
	EstimatedWidth  decimal.Decimal
	EstimatedWeight decimal.Decimal
	BomLines        int
}

// PortfolioPDFGenerator puerto del generador PDF (implementado con
// Maroto en infrastructure/pdf).
type PortfolioPDFGenerator interface {
	GeneratePortfolioPDF(items []PortfolioItem) ([]byte, error)
}

// PortfolioPDFUseCase exporta a PDF los productos visibles para el
// usuario, con la misma visibilidad por rol que el listado.
type PortfolioPDFUseCase struct {
	products  *usecase.ProductUseCase
	generator PortfolioPDFGenerator
}

// NewPortfolioPDFUseCase construye el caso de uso.
func NewPortfolioPDFUseCase(products *usecase.ProductUseCase, generator PortfolioPDFGenerator) *PortfolioPDFUseCase {
	return &PortfolioPDFUseCase{products: products, generator: generator}
}

// exportPageSize tope del reporte; el PDF no pagina sobre la API.
const exportPageSize = 500

// Export genera el PDF del portafolio visible para userID.
func (uc *PortfolioPDFUseCase) Export(userID string) ([]byte, error) {
	list, err := uc.products.List(userID, exportPageSize, 0)
	if err != nil {
		return nil, err
	}
	items := make([]PortfolioItem, 0, len(list.Items))
	for _, p := range list.Items {
		bomLines := 0
		if p.Bom != nil {
			bomLines = len(p.Bom.Materials)
		}
		items = append(items, PortfolioItem{
			Name:            p.Name,
			Description:     p.Description,
			CurrentStage:    p.CurrentStage,
			EstimatedHeight: p.EstimatedHeight,
			EstimatedWidth:  p.EstimatedWidth,
			EstimatedWeight: p.EstimatedWeight,
			BomLines:        bomLines,
		})
	}
	return uc.generator.GeneratePortfolioPDF(items)
}
