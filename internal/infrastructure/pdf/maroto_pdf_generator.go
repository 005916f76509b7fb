// Package pdf genera el resumen en PDF del reporte de tiempo por OS-Item.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empresa    │  Generado em + período        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: ciclos / OS-Item / abertas / órfãs / tempo total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: maiores tempos (top N)                              │
//	│  TABELA: total por dia                                       │
//	│  TABELA: entradas sem saída                                  │
//	│  TABELA: saídas sem entrada                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mmrconsultoria/portal-os/internal/application/report"
	"github.com/mmrconsultoria/portal-os/internal/domain/cycle"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// maxListRows filas por tabla de pendientes; el resto queda en el .xlsx.
const maxListRows = 40

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// CycleReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) CycleReportPDF(ctx context.Context, r *report.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tempo por OS-Item", true).
		WithAuthor(r.CompanyCode, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r, loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("MAIORES TEMPOS (TOP %d)", len(r.Top))))
	m.AddRows(tableHeaderRow(r.Filter.PairByProcess, "Ciclos", "Tempo total"))
	for _, a := range r.Top {
		m.AddRows(tableRow(r.Filter.PairByProcess, a.GroupingKey, a.ProcessTag,
			strconv.Itoa(a.Cycles), cycle.FormatHMS(a.TotalDuration)))
	}

	m.AddRows(sectionTitle("TOTAL POR DIA (DATA DA SAÍDA)"))
	m.AddRows(dailyHeaderRow())
	for _, d := range r.Daily {
		m.AddRows(dailyRow(d))
	}

	m.AddRows(sectionTitle(fmt.Sprintf("ENTRADAS SEM SAÍDA (%d)", len(r.Result.Open))))
	m.AddRows(tableHeaderRow(r.Filter.PairByProcess, "Entrada", "Aberto há"))
	for i, o := range r.Result.Open {
		if i == maxListRows {
			m.AddRows(moreRow(len(r.Result.Open) - maxListRows))
			break
		}
		age := o.Age(r.GeneratedAt)
		if i < len(r.OpenAges) {
			age = r.OpenAges[i]
		}
		m.AddRows(tableRow(r.Filter.PairByProcess, o.GroupingKey, o.ProcessTag,
			o.EntryAt.In(loc).Format(tsLayout), cycle.FormatHMS(age)))
	}

	m.AddRows(sectionTitle(fmt.Sprintf("SAÍDAS SEM ENTRADA (%d)", len(r.Result.Orphans))))
	m.AddRows(tableHeaderRow(r.Filter.PairByProcess, "Saída", ""))
	for i, o := range r.Result.Orphans {
		if i == maxListRows {
			m.AddRows(moreRow(len(r.Result.Orphans) - maxListRows))
			break
		}
		m.AddRows(tableRow(r.Filter.PairByProcess, o.GroupingKey, o.ProcessTag,
			o.ExitAt.In(loc).Format(tsLayout), ""))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

const tsLayout = "02/01/2006 15:04"

// headerRow: título + empresa (izq) y fecha de generación + período (der).
func headerRow(r *report.Report, loc *time.Location) core.Row {
	mode := "por OS-Item"
	if r.Filter.PairByProcess {
		mode = "por OS-Item e processo"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("TEMPO POR OS-ITEM", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Empresa: "+r.CompanyCode+"   |   Pareamento "+mode, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Gerado em "+r.GeneratedAt.In(loc).Format("02/01/2006 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Período: "+period(r.Filter), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// summaryRow: contadores del reporte.
func summaryRow(r *report.Report) core.Row {
	var total time.Duration
	for _, a := range r.Aggregates {
		total += a.TotalDuration
	}
	box := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 6}),
		)
	}
	return row.New(14).Add(
		box("Ciclos", strconv.Itoa(len(r.Result.Matched))),
		box("OS-Item", strconv.Itoa(len(r.Aggregates))),
		box("Sem saída", strconv.Itoa(len(r.Result.Open))),
		box("Sem entrada", strconv.Itoa(len(r.Result.Orphans))),
		box("Descartados", strconv.Itoa(len(r.Skipped))),
		box("Tempo total", cycle.FormatHMS(total)),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3}),
	))
}

// tableHeaderRow: OS-Item [Processo] + dos columnas de valor, con fondo azul.
func tableHeaderRow(byProc bool, a, b string) core.Row {
	h := func(label string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	cells := []core.Col{h("OS-Item", 3, align.Left)}
	if byProc {
		cells = append(cells, h("Processo", 3, align.Left))
	} else {
		cells = append(cells, col.New(3))
	}
	cells = append(cells, h(a, 3, align.Right), h(b, 3, align.Right))
	return row.New(7).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(byProc bool, key, proc, a, b string) core.Row {
	cell := func(s string, al align.Type) core.Col {
		return col.New(3).Add(text.New(s, props.Text{Size: 8, Align: al, Top: 1, Left: 1, Right: 1}))
	}
	if !byProc {
		proc = ""
	}
	return row.New(6).Add(cell(key, align.Left), cell(proc, align.Left), cell(a, align.Right), cell(b, align.Right))
}

func dailyHeaderRow() core.Row {
	h := func(label string, al align.Type) core.Col {
		return col.New(4).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(h("Dia", align.Left), h("Ciclos", align.Right), h("Tempo total", align.Right)).
		WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func dailyRow(d cycle.DailyTotal) core.Row {
	cell := func(s string, al align.Type) core.Col {
		return col.New(4).Add(text.New(s, props.Text{Size: 8, Align: al, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(6).Add(
		cell(d.Day.Format("02/01/2006"), align.Left),
		cell(strconv.Itoa(d.Cycles), align.Right),
		cell(cycle.FormatHMS(d.TotalDuration), align.Right),
	)
}

func moreRow(n int) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("... e mais %d (ver planilha)", n), props.Text{Size: 7, Color: colorGray, Top: 1, Left: 1}),
	))
}

func footerRow(r *report.Report) core.Row {
	note := "Tempo = Saída - Entrada, pareadas em ordem de chegada (FIFO) por OS-Item."
	if r.Cached {
		note += " Dados em cache (versão " + r.Version.String() + ")."
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(note, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func period(f report.Filter) string {
	return nonEmpty(formatDate(f.From), "início") + " a " + nonEmpty(formatDate(f.To), "hoje")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
