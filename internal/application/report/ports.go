package report

import "context"

// WorkbookWriter genera el .xlsx del reporte de ciclos.
type WorkbookWriter interface {
	CycleReportWorkbook(r *Report) ([]byte, error)
}

// PDFGenerator genera el resumen en PDF del reporte de ciclos.
type PDFGenerator interface {
	CycleReportPDF(ctx context.Context, r *Report) ([]byte, error)
}
