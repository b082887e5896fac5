// Package pdf genera el acta imprimible de un asiento del libro de movimientos
// (descargo por ficha técnica, entrada o traslado).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de acta          │  N° asiento + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UBICACIONES: Origen / Destino; partida o compra            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Unidad | Cantidad | Costo unit. | Importe│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                      │
//	│  FOOTER: QR con el id del asiento + firmas                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/Atelier-api/internal/application/inventory"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appinventory.ActPDFGenerator = (*MarotoActGenerator)(nil)

// MarotoActGenerator implementa inventory.ActPDFGenerator usando Maroto v2.
type MarotoActGenerator struct {
	company string
}

// NewMarotoActGenerator construye el generador; company aparece como autor y en el encabezado.
func NewMarotoActGenerator(company string) *MarotoActGenerator {
	return &MarotoActGenerator{company: company}
}

// GenerateActPDF genera el PDF y devuelve sus bytes.
func (g *MarotoActGenerator) GenerateActPDF(_ context.Context, act *appinventory.EntryAct) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(actTitle(act.Entry.Kind), true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, act))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(locationsRow(act))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(act.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(act.Total))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(act.Entry))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func actTitle(kind string) string {
	switch kind {
	case entity.LedgerKindWriteOff:
		return "Acta de descargo de materiales"
	case entity.LedgerKindTransfer:
		return "Acta de traslado de materiales"
	default:
		return "Acta de entrada de materiales"
	}
}

// headerRow: empresa + tipo de acta (izq) y N° de asiento + fecha (der).
func headerRow(company string, act *appinventory.EntryAct) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.ToUpper(actTitle(act.Entry.Kind)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ASIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(act.Entry.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+act.Entry.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// locationsRow: origen, destino y documento que originó el asiento.
func locationsRow(act *appinventory.EntryAct) core.Row {
	ref := ""
	switch {
	case act.Entry.BatchID != "":
		ref = "Partida: " + act.Entry.BatchID
	case act.Entry.PurchaseID != "":
		ref = "Compra: " + act.Entry.PurchaseID
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("UBICACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Origen: %s   |   Destino: %s",
				nonEmpty(act.FromName, "-"),
				nonEmpty(act.ToName, "-"),
			), props.Text{Size: 9, Top: 6}),
			text.New(nonEmpty(ref, act.Entry.Comment), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Material", 5, align.Left),
		h("Unidad", 1, align.Center),
		h("Cantidad", 2, align.Right),
		h("Costo unit.", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

// tableLineRows: una fila por línea del asiento.
func tableLineRows(lines []appinventory.ActLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(l.MaterialName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(l.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatAmount(l.Quantity, 3), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatAmount(l.UnitCost, 4), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatAmount(l.Amount, 2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalRow: total del asiento alineado a la derecha.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatAmount(total, 2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRow: QR con el id del asiento + espacio de firmas.
func footerRow(entry *entity.LedgerEntry) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(entry.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Entregó: ______________________", props.Text{Size: 9, Top: 8, Left: 3}),
			text.New("Recibió: ______________________", props.Text{Size: 9, Top: 20, Left: 3}),
			text.New(entry.ID, props.Text{Size: 6.5, Top: 32, Left: 3, Color: colorGray}),
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

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// formatAmount cantidad con places decimales, puntos de miles y coma decimal.
// Ej: 1234567.5 (2) → "1.234.567,50"
func formatAmount(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	out := sign + formatThousands(intPart)
	if frac != "" {
		out += "," + frac
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
