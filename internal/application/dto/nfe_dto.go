package dto

import "github.com/shopspring/decimal"

// NFeFileError archivo o entrada que no se pudo procesar.
type NFeFileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// NFeNoteRow fila de la hoja Notas.
type NFeNoteRow struct {
	Chave        string          `json:"chave"`
	Serie        string          `json:"serie"`
	Numero       string          `json:"numero"`
	Emissao      string          `json:"emissao"`
	EmitCNPJ     string          `json:"emit_cnpj"`
	EmitNome     string          `json:"emit_nome"`
	DestDoc      string          `json:"dest_doc"`
	DestNome     string          `json:"dest_nome"`
	ValorNF      decimal.Decimal `json:"vNF"`
	ValorPago    decimal.Decimal `json:"vPag"`
	Status       string          `json:"cStat"`
	StatusMotivo string          `json:"xMotivo"`
}

// NFeItemRow fila de la hoja Itens.
type NFeItemRow struct {
	Chave     string          `json:"chave"`
	NItem     int             `json:"nItem"`
	Codigo    string          `json:"cProd"`
	Descricao string          `json:"xProd"`
	NCM       string          `json:"NCM"`
	CFOP      string          `json:"CFOP"`
	Unidade   string          `json:"uCom"`
	Qtd       decimal.Decimal `json:"qCom"`
	VUnit     decimal.Decimal `json:"vUnCom"`
	VProd     decimal.Decimal `json:"vProd"`
}

// NFeImportResponse resumen de la importación con muestras de las dos hojas.
type NFeImportResponse struct {
	Files       int            `json:"files"`
	Notes       int            `json:"notes"`
	Items       int            `json:"items"`
	Errors      []NFeFileError `json:"errors"`
	NotesSample []NFeNoteRow   `json:"notes_sample"`
	ItemsSample []NFeItemRow   `json:"items_sample"`
}
