// Package pdf implementa la generación del resumen de cuenta corriente en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comercio  │  RESUMEN DE CUENTA + Fecha de emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TITULAR: Nombre + DNI/CUIT + contacto                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Detalle | Debe | Haber | Pagado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Límite de crédito / SALDO / Disponible            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/ledger"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDebit   = &props.Color{Red: 170, Green: 40, Blue: 40}
	colorCredit  = &props.Color{Red: 30, Green: 110, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa accounts.StatementPDFGenerator usando
// Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatementPDF genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	_ context.Context,
	merchant *entity.Merchant,
	membership *entity.Membership,
	account *entity.Account,
	movements []*entity.Movement,
	balance decimal.Decimal,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Cuenta Corriente", true).
		WithAuthor(merchant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(merchant))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(titularRow(membership))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de movimientos
	m.AddRows(tableHeaderRow())
	for _, r := range tableMovementRows(movements) {
		m.AddRows(r)
	}
	if len(movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(account, balance))

	// Leyenda
	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(
			"El saldo surge de la suma de los movimientos registrados a la fecha de emisión. "+
				"Ante cualquier diferencia comuníquese con el comercio.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: comercio (izq) y título + fecha de emisión (der).
func headerRow(merchant *entity.Merchant) core.Row {
	emitido := time.Now().Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(merchant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(merchant.Address, "—")+"   |   "+nonEmpty(merchant.Phone, "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RESUMEN DE CUENTA CORRIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+emitido, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// titularRow: datos del titular de la cuenta.
func titularRow(membership *entity.Membership) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TITULAR DE LA CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(membership.FullName(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("DNI/CUIT: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(membership.TaxID, "—"),
				nonEmpty(membership.Email, "—"),
				nonEmpty(membership.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Detalle", 5, align.Left),
		h("Debe", 2, align.Right),
		h("Haber", 2, align.Right),
		h("Pagado", 1, align.Center),
	)
}

// tableMovementRows: una fila por movimiento, en orden cronológico.
func tableMovementRows(movements []*entity.Movement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		debe, haber := "", ""
		if mv.Type == entity.MovementTypeDebit {
			debe = dto.FormatBalance(mv.Amount)
		} else {
			haber = dto.FormatBalance(mv.Amount)
		}
		pagado := ""
		if mv.Paid {
			pagado = "Sí"
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mv.CreatedAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				mv.Details,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				debe,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorDebit},
			)),
			col.New(2).Add(text.New(
				haber,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorCredit},
			)),
			col.New(1).Add(text.New(
				pagado,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(account *entity.Account, balance decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	saldoColor := colorCredit
	if balance.IsNegative() {
		saldoColor = colorDebit
	}
	grandLabel := text.New("SALDO ("+dto.BalanceStatus(balance)+"):", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: saldoColor, Right: 2,
	})
	grandValue := text.New(dto.FormatBalance(balance), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: saldoColor, Right: 1,
	})
	disponible := ledger.Available(account.CreditLimit, balance)

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Límite de crédito:"),
			label("Disponible:"),
			grandLabel,
		),
		col.New(4).Add(
			value(dto.FormatBalance(account.CreditLimit)),
			value(dto.FormatBalance(disponible)),
			grandValue,
		),
		col.New(1),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
