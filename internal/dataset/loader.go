// Package dataset loads evaluation test cases from JSON files and
// validates them against per-system JSON Schemas before any scoring
// work begins.
package dataset

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/segmentio/encoding/json"

	"github.com/evalgate/evalgate/pkg/types"
)

// Loader reads dataset files from a single directory. One file per
// system kind: rag_dataset.json, agent_dataset.json, chatbot_dataset.json.
type Loader struct {
	dir     string
	schemas map[types.System]*jsonschema.Schema
}

func NewLoader(dir string) (*Loader, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, fmt.Errorf("compile dataset schemas: %w", err)
	}
	return &Loader{dir: dir, schemas: schemas}, nil
}

// Filename returns the dataset filename for the given system kind.
func (l *Loader) Filename(sys types.System) string {
	return string(sys) + "_dataset.json"
}

type datasetFile struct {
	TestCases []types.TestCase `json:"test_cases"`
}

// Load reads, schema-validates, and decodes the dataset for the given
// system kind. An existing file with zero test cases is ErrEmptyDataset;
// structural problems surface as schema validation errors with the
// offending path.
func (l *Loader) Load(sys types.System) ([]types.TestCase, error) {
	path := filepath.Join(l.dir, l.Filename(sys))

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if err := l.schemas[sys].Validate(inst); err != nil {
		return nil, fmt.Errorf("dataset %s failed validation: %w", path, err)
	}

	var file datasetFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	if len(file.TestCases) == 0 {
		return nil, fmt.Errorf("dataset %s: %w", path, types.ErrEmptyDataset)
	}

	slog.Debug("dataset loaded",
		"system", sys,
		"path", path,
		"cases", len(file.TestCases))

	return file.TestCases, nil
}
