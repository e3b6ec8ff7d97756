// Package pdf implementa a representação impressa do recibo de entrega de material.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Prefeitura + Secretaria  │  N° Recibo + Data        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REQUISIÇÃO: número / solicitante / emissor                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Código | Material | Un. | Solicitado | Entregue     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL ENTREGUE                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  QR (número do recibo) + assinaturas                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/duarteol2000/sisreq/internal/application/requisition"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

var _ requisition.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 84, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa requisition.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReceiptPDF gera o PDF do recibo e devolve seus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(
	_ context.Context,
	receipt *entity.Receipt,
	req *entity.Requisition,
	unit *entity.Unit,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de Entrega de Material", true).
		WithAuthor(nonEmpty(unit.NomeSecretaria, "Almoxarifado"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(receipt, unit))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(requisitionRow(receipt, req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(req.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(req))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(receipt))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: prefeitura + secretaria (esq.) e n° do recibo + data (dir.).
func headerRow(receipt *entity.Receipt, unit *entity.Unit) core.Row {
	secretaria := nonEmpty(unit.NomeSecretaria, "-")
	if unit.SiglaSecretaria != "" {
		secretaria += " (" + unit.SiglaSecretaria + ")"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(unit.NomePrefeitura, "Prefeitura Municipal"), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(secretaria, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE ENTREGA DE MATERIAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(receipt.Number, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+receipt.IssuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// requisitionRow: dados da requisição atendida.
func requisitionRow(receipt *entity.Receipt, req *entity.Requisition) core.Row {
	delivered := "-"
	if req.DeliveredAt != nil {
		delivered = req.DeliveredAt.Format("02/01/2006 15:04")
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("REQUISIÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(req.Number, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Solicitante: %s   |   Emitido por: %s   |   Entrega: %s",
				nonEmpty(req.RequesterID, "-"),
				nonEmpty(receipt.IssuedBy, "-"),
				delivered,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de itens.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Material", 5, align.Left),
		h("Un.", 1, align.Center),
		h("Solicitado", 2, align.Right),
		h("Entregue", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows: uma linha por item da requisição.
func tableItemRows(items []entity.RequisitionItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		code, name, unit := it.MaterialID, "", ""
		if it.Material != nil {
			code, name, unit = it.Material.Code, it.Material.Name, it.Material.Unit
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(
				strconv.Itoa(it.QuantityRequested),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				strconv.Itoa(it.QuantityReleased),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: total consumido (soma das quantidades entregues).
func totalsRow(req *entity.Requisition) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(4).Add(text.New("TOTAL ENTREGUE:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(2).Add(text.New(strconv.Itoa(req.TotalReleased()), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRow: QR com o número do recibo e campos de assinatura.
func footerRow(receipt *entity.Receipt) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(receipt.Number, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Declaro ter recebido os materiais relacionados acima.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("_______________________________          _______________________________", props.Text{
				Size: 8, Top: 24, Left: 3,
			}),
			text.New("Recebedor                                                         Almoxarifado", props.Text{
				Size: 7, Top: 29, Left: 10, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
