package report

import (
	"context"
	"fmt"
	"time"

	"github.com/mmrconsultoria/portal-os/internal/domain/cycle"
	mov "github.com/mmrconsultoria/portal-os/internal/domain/movement"
	"github.com/mmrconsultoria/portal-os/internal/domain/repository"
	"github.com/mmrconsultoria/portal-os/pkg/logger"
)

// Config parámetros del reporte.
type Config struct {
	Location *time.Location
	CacheTTL time.Duration
	TopN     int
}

// snapshot parte cacheable del reporte: no depende de la hora de consulta.
type snapshot struct {
	Version    repository.SnapshotVersion
	Result     cycle.Result
	Aggregates []cycle.CycleAggregate
	Top        []cycle.CycleAggregate
	Daily      []cycle.DailyTotal
	Skipped    []mov.SkippedRecord
}

// Report reporte de ciclos listo para mostrar o exportar. Los slices son de solo lectura:
// pueden estar compartidos con la caché.
type Report struct {
	CompanyCode string
	GeneratedAt time.Time
	Location    *time.Location
	Filter      Filter
	Cached      bool
	Version     repository.SnapshotVersion

	Result     cycle.Result
	OpenAges   []time.Duration // mismo orden que Result.Open, calculadas con GeneratedAt
	Aggregates []cycle.CycleAggregate
	Top        []cycle.CycleAggregate
	Daily      []cycle.DailyTotal
	Skipped    []mov.SkippedRecord
}

// ReportUseCase arma el reporte de tiempo por OS-Item.
type ReportUseCase struct {
	repo  repository.MovementEventRepository
	xlsx  WorkbookWriter
	pdf   PDFGenerator
	cfg   Config
	now   func() time.Time
	cache *reportCache
	log   *logger.Logger
}

// NewReportUseCase construye el caso de uso. xlsx y pdf pueden ser nil si no se exporta.
func NewReportUseCase(repo repository.MovementEventRepository, xlsx WorkbookWriter, pdf PDFGenerator, cfg Config, log *logger.Logger) *ReportUseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	if log == nil {
		log = logger.Nop()
	}
	uc := &ReportUseCase{
		repo: repo,
		xlsx: xlsx,
		pdf:  pdf,
		cfg:  cfg,
		now:  time.Now,
		log:  log.Component("report"),
	}
	uc.cache = newReportCache(cfg.CacheTTL, func() time.Time { return uc.now() })
	return uc
}

// WithClock reemplaza el reloj (tests). Afecta la edad de las Entradas abiertas y la caché.
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// Location zona en que se interpretan y muestran las fechas.
func (uc *ReportUseCase) Location() *time.Location { return uc.cfg.Location }

// BuildReport carga los registros, normaliza, filtra, reconcilia y agrega.
// La edad de las Entradas abiertas se calcula en cada llamada, aun con caché.
func (uc *ReportUseCase) BuildReport(ctx context.Context, companyCode string, f Filter) (*Report, error) {
	version, err := uc.repo.Version(ctx, companyCode)
	if err != nil {
		return nil, fmt.Errorf("report: versión del almacén: %w", err)
	}
	key := companyCode + "|" + version.String() + "|" + f.key()

	// El cálculo es compartido por todos los pedidos con la misma clave: no depende de la
	// cancelación del primero que lo dispara.
	shared := context.WithoutCancel(ctx)
	snap, hit, err := uc.cache.getOrBuild(key, func() (*snapshot, error) {
		return uc.compute(shared, companyCode, f, version)
	})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	return &Report{
		CompanyCode: companyCode,
		GeneratedAt: now,
		Location:    uc.cfg.Location,
		Filter:      f,
		Cached:      hit,
		Version:     snap.Version,
		Result:      snap.Result,
		OpenAges:    cycle.OpenDuration(snap.Result.Open, now),
		Aggregates:  snap.Aggregates,
		Top:         snap.Top,
		Daily:       snap.Daily,
		Skipped:     snap.Skipped,
	}, nil
}

func (uc *ReportUseCase) compute(ctx context.Context, companyCode string, f Filter, version repository.SnapshotVersion) (*snapshot, error) {
	started := time.Now()
	recs, err := uc.repo.ListAll(ctx, companyCode)
	if err != nil {
		return nil, fmt.Errorf("report: cargar registros: %w", err)
	}

	events, skipped := mov.Normalize(recs, uc.cfg.Location)
	if len(skipped) > 0 {
		uc.log.Warn().
			Str("company", companyCode).
			Int("skipped", len(skipped)).
			Str("first_reason", skipped[0].Reason).
			Msg("registros descartados al normalizar")
	}

	events = f.apply(events, uc.cfg.Location)
	mode := f.Mode()
	result := cycle.Reconcile(events, mode)
	aggs := cycle.Aggregate(result.Matched, mode)

	uc.log.Debug().
		Str("company", companyCode).
		Int("events", len(events)).
		Int("matched", len(result.Matched)).
		Int("open", len(result.Open)).
		Int("orphans", len(result.Orphans)).
		Dur("took", time.Since(started)).
		Msg("reporte calculado")

	return &snapshot{
		Version:    version,
		Result:     result,
		Aggregates: aggs,
		Top:        cycle.TopByDuration(aggs, uc.cfg.TopN),
		Daily:      cycle.DailySeries(result.Matched, uc.cfg.Location),
		Skipped:    skipped,
	}, nil
}

// ExportXLSX arma el reporte y lo devuelve como planilla.
func (uc *ReportUseCase) ExportXLSX(ctx context.Context, companyCode string, f Filter) ([]byte, string, error) {
	if uc.xlsx == nil {
		return nil, "", fmt.Errorf("report: exportador xlsx no configurado")
	}
	r, err := uc.BuildReport(ctx, companyCode, f)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.xlsx.CycleReportWorkbook(r)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar xlsx: %w", err)
	}
	return data, exportName(r, "xlsx"), nil
}

// ExportPDF arma el reporte y lo devuelve como PDF.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, companyCode string, f Filter) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("report: generador pdf no configurado")
	}
	r, err := uc.BuildReport(ctx, companyCode, f)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.CycleReportPDF(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	return data, exportName(r, "pdf"), nil
}

func exportName(r *Report, ext string) string {
	return fmt.Sprintf("tempo_os_item_%s.%s", r.GeneratedAt.In(r.Location).Format("20060102_150405"), ext)
}
