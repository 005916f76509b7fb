package nfe_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appnfe "github.com/mmrconsultoria/portal-os/internal/application/nfe"
	"github.com/mmrconsultoria/portal-os/internal/infrastructure/nfe"
)

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestCollect_ZipYXMLSueltos(t *testing.T) {
	z := zipOf(t, map[string]string{
		"notas/":           "",
		"notas/a.XML":      "<a/>",
		"notas/b.xml":      "<b/>",
		"notas/leiame.txt": "x",
	})

	blobs, errs := nfe.NewCollector().Collect([]appnfe.Upload{
		{Name: "lote.ZIP", Data: z},
		{Name: "c.xml", Data: []byte("<c/>")},
		{Name: "foto.png", Data: []byte{1}},
		{Name: "ruim.zip", Data: []byte("not a zip")},
	})

	require.Len(t, blobs, 3)
	names := []string{blobs[0].Name, blobs[1].Name, blobs[2].Name}
	assert.Contains(t, names, "lote.ZIP/a.XML")
	assert.Contains(t, names, "lote.ZIP/b.xml")
	assert.Equal(t, "c.xml", blobs[2].Name)

	require.Len(t, errs, 2)
	assert.Equal(t, appnfe.FileError{File: "foto.png", Message: nfe.MsgUnsupported}, errs[0])
	assert.Equal(t, appnfe.FileError{File: "ruim.zip", Message: "ZIP corrompido"}, errs[1])
}
