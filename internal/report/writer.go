package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/evalgate/evalgate/pkg/types"
)

const filenameTimestamp = "20060102_150405"

// Writer persists rendered reports under a single output directory,
// one timestamped file per run and format.
type Writer struct {
	dir string
	now func() time.Time
}

func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	return &Writer{dir: dir, now: time.Now}, nil
}

func (w *Writer) filename(sys types.System, ext string) string {
	return fmt.Sprintf("%s_evaluation_%s.%s", sys, w.now().Format(filenameTimestamp), ext)
}

// SaveJSON writes the JSON report for rs and returns the file path.
func (w *Writer) SaveJSON(rs *types.ResultSet) (string, error) {
	data, err := GenerateJSONReport(rs)
	if err != nil {
		return "", err
	}
	return w.save(rs, data, "json")
}

// SaveHTML writes the HTML report for rs and returns the file path.
func (w *Writer) SaveHTML(rs *types.ResultSet) (string, error) {
	data, err := GenerateHTMLReport(rs)
	if err != nil {
		return "", err
	}
	return w.save(rs, data, "html")
}

func (w *Writer) save(rs *types.ResultSet, data []byte, ext string) (string, error) {
	path := filepath.Join(w.dir, w.filename(rs.System, ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	slog.Info("report saved", "system", rs.System, "format", ext, "path", path)
	return path, nil
}
