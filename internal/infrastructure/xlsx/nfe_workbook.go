package xlsx

import (
	"strconv"

	"github.com/shopspring/decimal"

	appnfe "github.com/mmrconsultoria/portal-os/internal/application/nfe"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
)

var _ appnfe.WorkbookWriter = (*Writer)(nil)

// Hojas de la exportación NF-e.
const (
	SheetNotes = "Notas"
	SheetItems = "Itens"
)

var noteColumns = []column{
	{"Chave", fmtText}, {"Modelo", fmtText}, {"Série", fmtInt}, {"Número", fmtInt},
	{"Emissão", fmtText}, {"Tipo NF (0=Entrada,1=Saída)", fmtText},
	{"Natureza da Operação", fmtText}, {"Município Fato Gerador", fmtText}, {"UF Emitente", fmtText},
	{"Emit_CNPJ", fmtText}, {"Emit_Nome", fmtText}, {"Emit_IE", fmtText},
	{"Dest_CNPJ", fmtText}, {"Dest_Nome", fmtText}, {"Dest_IE", fmtText},
	{"vBC", fmtMoney}, {"vICMS", fmtMoney}, {"vICMSDeson", fmtMoney}, {"vFCP", fmtMoney},
	{"vBCST", fmtMoney}, {"vST", fmtMoney}, {"vProd", fmtMoney}, {"vFrete", fmtMoney},
	{"vSeg", fmtMoney}, {"vDesc", fmtMoney}, {"vII", fmtMoney}, {"vIPI", fmtMoney},
	{"vPIS", fmtMoney}, {"vCOFINS", fmtMoney}, {"vOutro", fmtMoney}, {"vNF", fmtMoney},
	{"modFrete", fmtText}, {"vPag_total", fmtMoney}, {"cStat", fmtText}, {"xMotivo", fmtText},
}

var itemColumns = []column{
	{"Chave", fmtText}, {"nItem", fmtInt}, {"cProd", fmtText}, {"cEAN", fmtText},
	{"xProd", fmtText}, {"NCM", fmtText}, {"CFOP", fmtText}, {"uCom", fmtText},
	{"qCom", fmtMoney}, {"vUnCom", fmtMoney}, {"vProd", fmtMoney}, {"cEANTrib", fmtText},
	{"uTrib", fmtText}, {"qTrib", fmtMoney}, {"vUnTrib", fmtMoney}, {"vDesc_item", fmtMoney},
	{"indTot", fmtText}, {"ICMS_orig", fmtText}, {"ICMS_CST_CSOSN", fmtText}, {"ICMS_pICMS", fmtMoney},
	{"PIS_CST", fmtText}, {"PIS_pPIS", fmtMoney}, {"COFINS_CST", fmtText}, {"COFINS_pCOFINS", fmtMoney},
}

// Writer genera las planillas del portal.
type Writer struct{}

// NewWriter construye el generador.
func NewWriter() *Writer { return &Writer{} }

// NFeWorkbook planilla con las hojas Notas e Itens.
func (w *Writer) NFeWorkbook(notes []entity.NFeNote, items []entity.NFeItem) ([]byte, error) {
	f, err := newWorkbook(SheetNotes, SheetItems)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	noteRows := make([][]interface{}, 0, len(notes))
	for _, n := range notes {
		t := n.Totals
		noteRows = append(noteRows, []interface{}{
			n.Key, n.Model, intOrText(n.Series), intOrText(n.Number),
			n.IssuedAt, n.Type, n.Nature, n.TriggerCity, n.IssuerState,
			n.IssuerDoc, n.IssuerName, n.IssuerIE,
			n.RecipientDoc, n.RecipientName, n.RecipientIE,
			money(t.VBC), money(t.VICMS), money(t.VICMSDeson), money(t.VFCP),
			money(t.VBCST), money(t.VST), money(t.VProd), money(t.VFrete),
			money(t.VSeg), money(t.VDesc), money(t.VII), money(t.VIPI),
			money(t.VPIS), money(t.VCOFINS), money(t.VOutro), money(t.VNF),
			n.FreightMode, money(n.PaymentTotal), n.ProtocolStatus, n.ProtocolReason,
		})
	}
	if err := writeSheet(f, st, SheetNotes, noteColumns, noteRows); err != nil {
		return nil, err
	}

	itemRows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		itemRows = append(itemRows, []interface{}{
			it.Key, intOrText(it.Number), it.ProductCode, it.EAN,
			it.Description, it.NCM, it.CFOP, it.Unit,
			money(it.Quantity), money(it.UnitValue), money(it.Total), it.EANTax,
			it.UnitTax, money(it.QuantityTax), money(it.UnitValueTax), money(it.Discount),
			it.IndTot, it.ICMSOrigin, it.ICMSCST, money(it.ICMSRate),
			it.PISCST, money(it.PISRate), it.COFINSCST, money(it.COFINSRate),
		})
	}
	if err := writeSheet(f, st, SheetItems, itemColumns, itemRows); err != nil {
		return nil, err
	}
	return toBytes(f)
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// intOrText escribe números enteros como número; lo demás queda como texto.
func intOrText(s string) interface{} {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}
