// Package nfe lee documentos NF-e (modelo 55) emitidos por la SEFAZ.
package nfe

import (
	"errors"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	appnfe "github.com/mmrconsultoria/portal-os/internal/application/nfe"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
)

var _ appnfe.Parser = (*Parser)(nil)

// Namespace oficial de la NF-e.
const Namespace = "http://www.portalfiscal.inf.br/nfe"

var (
	ErrInvalidXML    = errors.New("XML inválido")
	ErrMissingInfNFe = errors.New("NF-e não encontrada (infNFe ausente)")
)

// Parser implementa el puerto de parseo con etree.
type Parser struct{}

// NewParser construye el parser.
func NewParser() *Parser { return &Parser{} }

// Parse acepta el envoltorio <nfeProc> o un <NFe> suelto.
func (p *Parser) Parse(xmlBytes []byte) (*entity.NFeDocument, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, ErrInvalidXML
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrInvalidXML
	}

	nfe := root.FindElement(".//NFe")
	if nfe == nil {
		nfe = root
	}
	inf := nfe.FindElement(".//infNFe")
	if inf == nil && nfe.Tag == "infNFe" {
		inf = nfe
	}
	if inf == nil || inf.NamespaceURI() != Namespace {
		return nil, ErrMissingInfNFe
	}

	key := strings.ReplaceAll(inf.SelectAttrValue("Id", ""), "NFe", "")
	ide := inf.SelectElement("ide")
	emit := inf.SelectElement("emit")
	dest := inf.SelectElement("dest")
	total := inf.FindElement("total/ICMSTot")
	transp := inf.SelectElement("transp")
	prot := root.FindElement(".//protNFe")

	note := entity.NFeNote{
		Key:            key,
		Model:          text(ide, "mod"),
		Series:         text(ide, "serie"),
		Number:         text(ide, "nNF"),
		IssuedAt:       firstText(ide, "dhEmi", "dEmi"),
		Type:           text(ide, "tpNF"),
		Nature:         text(ide, "natOp"),
		TriggerCity:    text(ide, "cMunFG"),
		IssuerState:    text(emit, "enderEmit/UF"),
		IssuerDoc:      firstText(emit, "CNPJ", "CPF"),
		IssuerName:     text(emit, "xNome"),
		IssuerIE:       text(emit, "IE"),
		RecipientDoc:   firstText(dest, "CNPJ", "CPF"),
		RecipientName:  text(dest, "xNome"),
		RecipientIE:    text(dest, "IE"),
		Totals:         totals(total),
		FreightMode:    text(transp, "modFrete"),
		PaymentTotal:   decimal.Zero,
		ProtocolStatus: text(prot, "infProt/cStat"),
		ProtocolReason: text(prot, "infProt/xMotivo"),
	}
	if pag := inf.SelectElement("pag"); pag != nil {
		for _, det := range pag.SelectElements("detPag") {
			note.PaymentTotal = note.PaymentTotal.Add(num(det, "vPag"))
		}
	}

	items := []entity.NFeItem{}
	for _, det := range inf.SelectElements("det") {
		items = append(items, item(key, det))
	}
	return &entity.NFeDocument{Note: note, Items: items}, nil
}

func totals(t *etree.Element) entity.NFeTotals {
	return entity.NFeTotals{
		VBC:        num(t, "vBC"),
		VICMS:      num(t, "vICMS"),
		VICMSDeson: num(t, "vICMSDeson"),
		VFCP:       num(t, "vFCP"),
		VBCST:      num(t, "vBCST"),
		VST:        num(t, "vST"),
		VProd:      num(t, "vProd"),
		VFrete:     num(t, "vFrete"),
		VSeg:       num(t, "vSeg"),
		VDesc:      num(t, "vDesc"),
		VII:        num(t, "vII"),
		VIPI:       num(t, "vIPI"),
		VPIS:       num(t, "vPIS"),
		VCOFINS:    num(t, "vCOFINS"),
		VOutro:     num(t, "vOutro"),
		VNF:        num(t, "vNF"),
	}
}

func item(key string, det *etree.Element) entity.NFeItem {
	prod := det.SelectElement("prod")
	it := entity.NFeItem{
		Key:          key,
		Number:       det.SelectAttrValue("nItem", ""),
		ProductCode:  text(prod, "cProd"),
		EAN:          text(prod, "cEAN"),
		Description:  text(prod, "xProd"),
		NCM:          text(prod, "NCM"),
		CFOP:         text(prod, "CFOP"),
		Unit:         text(prod, "uCom"),
		Quantity:     num(prod, "qCom"),
		UnitValue:    num(prod, "vUnCom"),
		Total:        num(prod, "vProd"),
		EANTax:       text(prod, "cEANTrib"),
		UnitTax:      text(prod, "uTrib"),
		QuantityTax:  num(prod, "qTrib"),
		UnitValueTax: num(prod, "vUnTrib"),
		Discount:     num(prod, "vDesc"),
		IndTot:       text(prod, "indTot"),
		ICMSRate:     decimal.Zero,
		PISRate:      decimal.Zero,
		COFINSRate:   decimal.Zero,
	}

	// el grupo concreto varía (ICMS00, ICMSSN102, PISAliq...): se toma el primer hijo
	if icms := firstChild(det.FindElement("imposto/ICMS")); icms != nil {
		it.ICMSCST = firstText(icms, "CST", "CSOSN")
		it.ICMSOrigin = text(icms, "orig")
		it.ICMSRate = num(icms, "pICMS")
	}
	if pis := firstChild(det.FindElement("imposto/PIS")); pis != nil {
		it.PISCST = text(pis, "CST")
		it.PISRate = num(pis, "pPIS")
	}
	if cofins := firstChild(det.FindElement("imposto/COFINS")); cofins != nil {
		it.COFINSCST = text(cofins, "CST")
		it.COFINSRate = num(cofins, "pCOFINS")
	}
	return it
}

func firstChild(el *etree.Element) *etree.Element {
	if el == nil {
		return nil
	}
	children := el.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func text(el *etree.Element, path string) string {
	if el == nil {
		return ""
	}
	x := el.FindElement(path)
	if x == nil {
		return ""
	}
	return strings.TrimSpace(x.Text())
}

func firstText(el *etree.Element, paths ...string) string {
	for _, p := range paths {
		if t := text(el, p); t != "" {
			return t
		}
	}
	return ""
}

// num acepta coma decimal; vacío o inválido vale cero.
func num(el *etree.Element, path string) decimal.Decimal {
	t := text(el, path)
	if t == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(t, ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	}
	return input, nil
}
