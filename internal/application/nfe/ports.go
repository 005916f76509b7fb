package nfe

import "github.com/mmrconsultoria/portal-os/internal/domain/entity"

// Upload archivo recibido (multipart o disco).
type Upload struct {
	Name string
	Data []byte
}

// FileError archivo o XML que no se pudo procesar.
type FileError struct {
	File    string
	Message string
}

// Collector extrae los XML de los uploads (.xml sueltos o dentro de .zip).
type Collector interface {
	Collect(files []Upload) ([]entity.XMLBlob, []FileError)
}

// Parser interpreta un XML de NF-e.
type Parser interface {
	Parse(xml []byte) (*entity.NFeDocument, error)
}

// WorkbookWriter genera la planilla con las hojas Notas e Itens.
type WorkbookWriter interface {
	NFeWorkbook(notes []entity.NFeNote, items []entity.NFeItem) ([]byte, error)
}
