// Package export renders analytics reports into downloadable documents. The
// aggregation result is the single source for every format; exporters only
// change the presentation.
package export

import (
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/analytics"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Exporter renders one report format.
type Exporter interface {
	ContentType() string
	Filename(summary analytics.ReportSummary) string
	Render(report analytics.ReportResponse) ([]byte, error)
}

// Registry maps format keys ("excel", "pdf") to exporters.
type Registry struct {
	exporters map[string]Exporter
}

func NewRegistry() *Registry {
	return &Registry{
		exporters: map[string]Exporter{
			"excel": NewExcelExporter(),
			"pdf":   NewPDFExporter(),
		},
	}
}

// Get returns the exporter for format, ErrUnknownFormat otherwise.
func (r *Registry) Get(format string) (Exporter, error) {
	exp, ok := r.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return exp, nil
}
