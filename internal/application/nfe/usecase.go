package nfe

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/mmrconsultoria/portal-os/internal/application/dto"
	"github.com/mmrconsultoria/portal-os/internal/domain"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	"github.com/mmrconsultoria/portal-os/pkg/logger"
)

// Mensajes devueltos al usuario.
const (
	MsgNoFiles = "Anexe ao menos um arquivo .zip ou .xml."
	MsgNoXML   = "Nenhum XML encontrado dentro dos arquivos enviados."
	MsgNoValid = "Não foi possível extrair nenhuma NF-e válida dos arquivos."
	ExportName = "XML_NFe_Importados.xlsx"

	sampleRows = 20
)

// ImportResult notas deduplicadas por chave, sus ítems y los errores por archivo.
type ImportResult struct {
	XMLCount int
	Notes    []entity.NFeNote
	Items    []entity.NFeItem
	Errors   []FileError
}

// ImportUseCase importación masiva de XML NF-e a planilla.
type ImportUseCase struct {
	collector Collector
	parser    Parser
	workbook  WorkbookWriter
	workers   int
	log       *logger.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(collector Collector, parser Parser, workbook WorkbookWriter, log *logger.Logger) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{
		collector: collector,
		parser:    parser,
		workbook:  workbook,
		workers:   runtime.NumCPU(),
		log:       log.Component("nfe"),
	}
}

// Import junta los XML, los parsea en paralelo y deduplica por chave (gana el último leído).
// Los XML ilegibles no cortan la importación: quedan en Errors.
func (uc *ImportUseCase) Import(ctx context.Context, files []Upload) (*ImportResult, error) {
	if len(files) == 0 {
		return nil, &domain.ValidationError{Problems: []string{MsgNoFiles}}
	}

	blobs, fileErrs := uc.collector.Collect(files)
	if len(blobs) == 0 {
		problems := []string{MsgNoXML}
		for _, e := range fileErrs {
			problems = append(problems, e.File+": "+e.Message)
		}
		return nil, &domain.ValidationError{Problems: problems}
	}

	docs := make([]*entity.NFeDocument, len(blobs))
	parseErrs := make([]error, len(blobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, b := range blobs {
		i, b := i, b
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i], parseErrs[i] = uc.parser.Parse(b.Content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("nfe: importar: %w", err)
	}

	res := &ImportResult{XMLCount: len(blobs), Errors: fileErrs}
	var parsed []*entity.NFeDocument
	for i, doc := range docs {
		if parseErrs[i] != nil {
			res.Errors = append(res.Errors, FileError{File: blobs[i].Name, Message: parseErrs[i].Error()})
			continue
		}
		parsed = append(parsed, doc)
	}
	if len(parsed) == 0 {
		problems := []string{MsgNoValid}
		for _, e := range res.Errors {
			problems = append(problems, e.File+": "+e.Message)
		}
		return nil, &domain.ValidationError{Problems: problems}
	}

	res.Notes, res.Items = dedupe(parsed)
	uc.log.Info().
		Int("xml", res.XMLCount).
		Int("notes", len(res.Notes)).
		Int("items", len(res.Items)).
		Int("errors", len(res.Errors)).
		Msg("NF-e importadas")
	return res, nil
}

// dedupe conserva la última aparición de cada chave, en la posición de esa aparición.
func dedupe(docs []*entity.NFeDocument) ([]entity.NFeNote, []entity.NFeItem) {
	last := make(map[string]int, len(docs))
	for i, d := range docs {
		last[d.Note.Key] = i
	}
	notes := make([]entity.NFeNote, 0, len(last))
	items := []entity.NFeItem{}
	for i, d := range docs {
		if last[d.Note.Key] != i {
			continue
		}
		notes = append(notes, d.Note)
		items = append(items, d.Items...)
	}
	return notes, items
}

// Workbook genera la planilla Notas/Itens del resultado.
func (uc *ImportUseCase) Workbook(res *ImportResult) ([]byte, error) {
	if uc.workbook == nil {
		return nil, fmt.Errorf("nfe: generador de planilla no configurado")
	}
	data, err := uc.workbook.NFeWorkbook(res.Notes, res.Items)
	if err != nil {
		return nil, fmt.Errorf("nfe: generar planilla: %w", err)
	}
	return data, nil
}

// ToResponse resumen JSON con las primeras filas de cada hoja.
func ToResponse(res *ImportResult) dto.NFeImportResponse {
	out := dto.NFeImportResponse{
		Files:       res.XMLCount,
		Notes:       len(res.Notes),
		Items:       len(res.Items),
		Errors:      make([]dto.NFeFileError, 0, len(res.Errors)),
		NotesSample: []dto.NFeNoteRow{},
		ItemsSample: []dto.NFeItemRow{},
	}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, dto.NFeFileError{File: e.File, Error: e.Message})
	}
	for i, n := range res.Notes {
		if i == sampleRows {
			break
		}
		out.NotesSample = append(out.NotesSample, dto.NFeNoteRow{
			Chave:        n.Key,
			Serie:        n.Series,
			Numero:       n.Number,
			Emissao:      n.IssuedAt,
			EmitCNPJ:     n.IssuerDoc,
			EmitNome:     n.IssuerName,
			DestDoc:      n.RecipientDoc,
			DestNome:     n.RecipientName,
			ValorNF:      n.Totals.VNF,
			ValorPago:    n.PaymentTotal,
			Status:       n.ProtocolStatus,
			StatusMotivo: n.ProtocolReason,
		})
	}
	for i, it := range res.Items {
		if i == sampleRows {
			break
		}
		n, _ := strconv.Atoi(it.Number)
		out.ItemsSample = append(out.ItemsSample, dto.NFeItemRow{
			Chave:     it.Key,
			NItem:     n,
			Codigo:    it.ProductCode,
			Descricao: it.Description,
			NCM:       it.NCM,
			CFOP:      it.CFOP,
			Unidade:   it.Unit,
			Qtd:       it.Quantity,
			VUnit:     it.UnitValue,
			VProd:     it.Total,
		})
	}
	return out
}
