package workbook

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/vfg2006/order-template-api/internal/domain"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Render monta o arquivo e devolve o .xlsx completo. O resultado é idêntico byte a byte
// para o mesmo conjunto de dados e a mesma data.
func (a *Assembler) Render(ds domain.ReferenceDataset, today time.Time) ([]byte, error) {
	f, err := a.Build(ds, today)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar o arquivo: %w", err)
	}

	return canonicalize(buf.Bytes())
}

// canonicalize regrava o pacote zip com as entradas em ordem alfabética e sem data de
// modificação. A ordem de escrita das partes não é estável entre execuções.
func canonicalize(raw []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o pacote do arquivo: %w", err)
	}

	files := append([]*zip.File(nil), zr.File...)
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, file := range files {
		if err := copyEntry(zw, file); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("erro ao fechar o pacote do arquivo: %w", err)
	}

	return out.Bytes(), nil
}

func copyEntry(zw *zip.Writer, file *zip.File) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   file.Name,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("erro ao criar a entrada %s: %w", file.Name, err)
	}

	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("erro ao abrir a entrada %s: %w", file.Name, err)
	}
	defer rc.Close()

	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("erro ao copiar a entrada %s: %w", file.Name, err)
	}
	return nil
}
