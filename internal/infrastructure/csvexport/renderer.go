// Package csvexport renderiza el reporte de feedback como CSV (RFC 4180).
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/team-feedback/internal/application/reports"
)

var _ reports.Renderer = (*Renderer)(nil)

// Renderer escribe la cabecera reports.Columns y una línea por fila.
// Los campos con coma, comillas o saltos de línea van entre comillas y las comillas internas se duplican.
type Renderer struct{}

// NewRenderer construye el renderer.
func NewRenderer() *Renderer { return &Renderer{} }

func (Renderer) ContentType() string { return "text/csv; charset=utf-8" }
func (Renderer) Extension() string   { return "csv" }

// Render ignora el título: el CSV no tiene dónde ponerlo.
func (Renderer) Render(_ string, rows []reports.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(reports.Columns); err != nil {
		return nil, fmt.Errorf("csv: cabecera: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return nil, fmt.Errorf("csv: fila: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}
