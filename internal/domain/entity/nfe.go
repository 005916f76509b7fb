package entity

import "github.com/shopspring/decimal"

// NFeNote cabecera de una NF-e (modelo 55) tal como se exporta en la hoja "Notas".
type NFeNote struct {
	Key            string // Chave (infNFe/@Id sin el prefijo "NFe")
	Model          string
	Series         string
	Number         string
	IssuedAt       string // dhEmi o dEmi, tal cual
	Type           string // tpNF: 0=Entrada, 1=Saída
	Nature         string // natOp
	TriggerCity    string // cMunFG
	IssuerState    string
	IssuerDoc      string // CNPJ o CPF
	IssuerName     string
	IssuerIE       string
	RecipientDoc   string
	RecipientName  string
	RecipientIE    string
	Totals         NFeTotals
	FreightMode    string // modFrete
	PaymentTotal   decimal.Decimal
	ProtocolStatus string // cStat
	ProtocolReason string // xMotivo
}

// NFeTotals grupo ICMSTot.
type NFeTotals struct {
	VBC        decimal.Decimal
	VICMS      decimal.Decimal
	VICMSDeson decimal.Decimal
	VFCP       decimal.Decimal
	VBCST      decimal.Decimal
	VST        decimal.Decimal
	VProd      decimal.Decimal
	VFrete     decimal.Decimal
	VSeg       decimal.Decimal
	VDesc      decimal.Decimal
	VII        decimal.Decimal
	VIPI       decimal.Decimal
	VPIS       decimal.Decimal
	VCOFINS    decimal.Decimal
	VOutro     decimal.Decimal
	VNF        decimal.Decimal
}

// NFeItem línea <det> de la nota (hoja "Itens").
type NFeItem struct {
	Key          string
	Number       string          // nItem
	ProductCode  string          // cProd
	EAN          string
	Description  string          // xProd
	NCM          string
	CFOP         string
	Unit         string          // uCom
	Quantity     decimal.Decimal
	UnitValue    decimal.Decimal
	Total        decimal.Decimal // vProd
	EANTax       string
	UnitTax      string
	QuantityTax  decimal.Decimal
	UnitValueTax decimal.Decimal
	Discount     decimal.Decimal
	IndTot       string
	ICMSOrigin   string
	ICMSCST      string          // CST o CSOSN
	ICMSRate     decimal.Decimal
	PISCST       string
	PISRate      decimal.Decimal
	COFINSCST    string
	COFINSRate   decimal.Decimal
}

// NFeDocument resultado del parseo de un XML.
type NFeDocument struct {
	Note  NFeNote
	Items []NFeItem
}

// XMLBlob contenido de un XML junto con el nombre con que llegó (archivo o entrada del zip).
type XMLBlob struct {
	Name    string
	Content []byte
}
