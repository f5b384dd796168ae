package export

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
	"github.com/gold2201/LocalNetworkProject/pkg/metrics"
	"github.com/gold2201/LocalNetworkProject/pkg/trace"
)

// FormatError reports that a format could not be produced. The service
// recovers from it by falling back to CSV.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("export format %s: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// File is a produced export
type File struct {
	Name        string
	ContentType string
	Format      string
	Data        []byte
}

// Request describes one export
type Request struct {
	// Kind labels the export in metrics and logs, e.g. "computers".
	Kind string
	// Base is the file name base passed to the name template.
	Base string
	// FixedName, when set, is used verbatim instead of the template.
	FixedName string
	Sections  Sections
	// Format overrides the configured format when non-empty.
	Format string
}

// Service writes tables as xlsx, falling back to CSV or a ZIP of CSVs
type Service struct {
	cfg     config.ExportConfig
	namer   *FileNamer
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	writeXLSX func(tables []Table, maxWidth int) ([]byte, error)
}

// NewService creates the export service
func NewService(cfg config.ExportConfig, lg *zap.Logger, m *metrics.Metrics) (*Service, error) {
	namer, err := NewFileNamer(cfg.FilenameTemplate)
	if err != nil {
		return nil, err
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Service{
		cfg:       cfg,
		namer:     namer,
		logger:    lg.Named("export"),
		metrics:   m,
		now:       time.Now,
		writeXLSX: writeXLSX,
	}, nil
}

// Write produces the file for req
func (s *Service) Write(ctx context.Context, req Request) (*File, error) {
	sections := req.Sections
	if len(sections) == 0 {
		sections = Sections{{}}
	}
	format := req.Format
	if format == "" {
		format = s.cfg.Format
	}

	sc := trace.Tracer(cnst.TraceExport).Start(ctx, cnst.SpanExportWrite).
		WithAttrs(
			attribute.Int(cnst.AttrExportSheets, len(sections)),
			attribute.Int(cnst.AttrExportRows, sections.rows()),
		)
	defer sc.End()

	file, err := s.render(sections, format)
	if err != nil {
		sc.Fail(err)
		return nil, fmt.Errorf("export %s: %w", req.Kind, err)
	}
	sc.WithAttrs(attribute.String(cnst.AttrExportFormat, file.Format))

	if req.FixedName != "" {
		file.Name = req.FixedName
	} else {
		name, err := s.namer.Name(req.Base, s.now(), file.Format)
		if err != nil {
			sc.Fail(err)
			return nil, err
		}
		file.Name = name
	}

	s.metrics.ExportDone(req.Kind, file.Format, sections.rows())
	s.logger.Debug("export written",
		zap.String("kind", req.Kind),
		zap.String("file", file.Name),
		zap.Int("sheets", len(sections)),
		zap.Int("bytes", len(file.Data)))
	return file, nil
}

func (s *Service) render(sections Sections, format string) (*File, error) {
	if format != cnst.ExportFormatCSV {
		data, err := s.writeXLSX(sections, s.cfg.MaxColumnWidth)
		if err == nil {
			return &File{ContentType: ContentTypeXLSX, Format: cnst.ExportFormatXLSX, Data: data}, nil
		}
		s.logger.Warn("falling back to csv",
			zap.Error(&FormatError{Format: cnst.ExportFormatXLSX, Err: err}))
	}

	if len(sections) == 1 {
		data, err := writeCSV(sections[0])
		if err != nil {
			return nil, &FormatError{Format: cnst.ExportFormatCSV, Err: err}
		}
		return &File{ContentType: ContentTypeCSV, Format: cnst.ExportFormatCSV, Data: data}, nil
	}
	data, err := writeZIP(sections)
	if err != nil {
		return nil, &FormatError{Format: cnst.ExportFormatZIP, Err: err}
	}
	return &File{ContentType: ContentTypeZIP, Format: cnst.ExportFormatZIP, Data: data}, nil
}
