package nfe

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"strings"

	appnfe "github.com/mmrconsultoria/portal-os/internal/application/nfe"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
)

var _ appnfe.Collector = (*Collector)(nil)

// Mensajes de error por archivo.
const (
	MsgCorruptZip  = "ZIP corrompido"
	MsgUnsupported = "tipo de arquivo não suportado (use .zip ou .xml)"
)

// Collector junta los XML de los uploads: .xml directos y entradas .xml de cada .zip.
type Collector struct{}

// NewCollector construye el colector.
func NewCollector() *Collector { return &Collector{} }

// Collect no corta ante un zip corrupto: lo informa y sigue con el resto.
func (c *Collector) Collect(files []appnfe.Upload) ([]entity.XMLBlob, []appnfe.FileError) {
	var blobs []entity.XMLBlob
	var errs []appnfe.FileError

	for _, f := range files {
		name := strings.ToLower(f.Name)
		switch {
		case strings.HasSuffix(name, ".zip"):
			found, err := readZip(f)
			if err != nil {
				errs = append(errs, appnfe.FileError{File: f.Name, Message: MsgCorruptZip})
				continue
			}
			blobs = append(blobs, found...)
		case strings.HasSuffix(name, ".xml"):
			blobs = append(blobs, entity.XMLBlob{Name: f.Name, Content: f.Data})
		default:
			errs = append(errs, appnfe.FileError{File: f.Name, Message: MsgUnsupported})
		}
	}
	return blobs, errs
}

func readZip(f appnfe.Upload) ([]entity.XMLBlob, error) {
	zr, err := zip.NewReader(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		return nil, err
	}
	var out []entity.XMLBlob
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(zf.Name), ".xml") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, entity.XMLBlob{Name: f.Name + "/" + path.Base(zf.Name), Content: data})
	}
	return out, nil
}
