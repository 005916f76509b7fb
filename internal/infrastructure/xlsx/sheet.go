// Package xlsx genera y lee planillas Excel con excelize.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type colFormat int

const (
	fmtText colFormat = iota
	fmtMoney
	fmtInt
)

// Formatos numéricos predefinidos de Excel.
const (
	numFmtInt   = 1 // 0
	numFmtMoney = 4 // #,##0.00
)

type column struct {
	header string
	format colFormat
}

type styles struct {
	header int
	money  int
	int    int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
		Border: border,
	}); err != nil {
		return s, err
	}
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: numFmtMoney}); err != nil {
		return s, err
	}
	if s.int, err = f.NewStyle(&excelize.Style{NumFmt: numFmtInt}); err != nil {
		return s, err
	}
	return s, nil
}

// writeSheet aplica anchos y formatos por columna, escribe cabecera + filas y
// resalta la cabecera. La hoja debe existir.
func writeSheet(f *excelize.File, st styles, sheet string, cols []column, rows [][]interface{}) error {
	for i, c := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(len([]rune(c.header)) + 2)
		if width < 10 {
			width = 10
		}
		if width > 50 {
			width = 50
		}
		switch c.format {
		case fmtMoney:
			width = 14
			err = f.SetColStyle(sheet, name, st.money)
		case fmtInt:
			width = 10
			err = f.SetColStyle(sheet, name, st.int)
		}
		if err != nil {
			return fmt.Errorf("xlsx: estilo columna %s: %w", name, err)
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c.header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: cabecera %s: %w", sheet, err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+2, sheet, err)
		}
	}

	return f.SetRowStyle(sheet, 1, 1, st.header)
}

// newWorkbook crea un libro con las hojas indicadas, en orden.
func newWorkbook(sheets ...string) (*excelize.File, error) {
	f := excelize.NewFile()
	first := f.GetSheetName(0)
	if err := f.SetSheetName(first, sheets[0]); err != nil {
		f.Close()
		return nil, err
	}
	for _, s := range sheets[1:] {
		if _, err := f.NewSheet(s); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func toBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
