package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmrconsultoria/portal-os/internal/application/report"
	"github.com/mmrconsultoria/portal-os/internal/domain/cycle"
	"github.com/mmrconsultoria/portal-os/internal/infrastructure/pdf"
)

func sampleReport(open int) *report.Report {
	brt := time.FixedZone("BRT", -3*3600)
	at := func(h int) time.Time { return time.Date(2024, 3, 4, h, 0, 0, 0, brt) }
	matched := []cycle.MatchedCycle{
		{WorkOrderID: "123", ItemID: "4", GroupingKey: "123-4", ProcessTag: "Afiação", EntryAt: at(8), ExitAt: at(10), Duration: 2 * time.Hour},
		{WorkOrderID: "123", ItemID: "5", GroupingKey: "123-5", ProcessTag: "Erosão", EntryAt: at(9), ExitAt: at(10), Duration: time.Hour},
	}
	aggs := cycle.Aggregate(matched, cycle.ByItemAndProcess)
	r := &report.Report{
		CompanyCode: "MMR",
		GeneratedAt: at(12),
		Location:    brt,
		Filter:      report.Filter{PairByProcess: true, From: time.Date(2024, 3, 1, 0, 0, 0, 0, brt)},
		Result:      cycle.Result{Matched: matched, Open: []cycle.OpenEntry{}, Orphans: []cycle.OrphanExit{{GroupingKey: "9-1", ExitAt: at(7)}}},
		Aggregates:  aggs,
		Top:         cycle.TopByDuration(aggs, 10),
		Daily:       cycle.DailySeries(matched, brt),
	}
	for i := 0; i < open; i++ {
		r.Result.Open = append(r.Result.Open, cycle.OpenEntry{GroupingKey: "7-1", EntryAt: at(6)})
		r.OpenAges = append(r.OpenAges, 6*time.Hour)
	}
	return r
}

func TestCycleReportPDF(t *testing.T) {
	data, err := pdf.NewMarotoPDFGenerator().CycleReportPDF(context.Background(), sampleReport(2))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestCycleReportPDF_MuchasAbiertasSeTruncan(t *testing.T) {
	data, err := pdf.NewMarotoPDFGenerator().CycleReportPDF(context.Background(), sampleReport(120))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestCycleReportPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewMarotoPDFGenerator().CycleReportPDF(ctx, sampleReport(0))
	assert.ErrorIs(t, err, context.Canceled)
}
