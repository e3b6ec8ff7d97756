// Package excel gera a planilha XLSX da posição de estoque.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/duarteol2000/sisreq/internal/application/inventory"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

var _ inventory.StockSheetGenerator = (*StockSheetGenerator)(nil)

const sheetName = "Estoque"

var headers = []string{"Código", "Material", "Marca", "Categoria", "Unidade", "Saldo", "Mínimo", "Abaixo do mínimo", "Ativo"}

// StockSheetGenerator implementa inventory.StockSheetGenerator com excelize.
type StockSheetGenerator struct{}

// NewStockSheetGenerator constrói o gerador.
func NewStockSheetGenerator() *StockSheetGenerator { return &StockSheetGenerator{} }

// GenerateStockSheet escreve uma linha por material, após duas linhas de cabeçalho da unidade.
func (g *StockSheetGenerator) GenerateStockSheet(_ context.Context, unit *entity.Unit, materials []*entity.Material, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: renomear planilha: %w", err)
	}

	title := unit.NomeSecretaria
	if unit.SiglaSecretaria != "" {
		title = fmt.Sprintf("%s (%s)", title, unit.SiglaSecretaria)
	}
	_ = f.SetCellValue(sheetName, "A1", title)
	_ = f.SetCellValue(sheetName, "A2", "Gerado em "+generatedAt.Format("02/01/2006 15:04"))

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	const headerRow = 4
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	_ = f.SetCellStyle(sheetName, "A1", "A1", bold)
	_ = f.SetCellStyle(sheetName, first, last, bold)

	for i, m := range materials {
		r := headerRow + 1 + i
		values := []any{
			m.Code, m.Name, m.Brand, m.Category, m.Unit,
			m.QuantityOnHand, m.MinimumQuantity, yesNo(m.BelowMinimum()), yesNo(m.Active),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("excel: célula %s: %w", cell, err)
			}
		}
	}
	_ = f.SetColWidth(sheetName, "B", "B", 40)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escrever arquivo: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
