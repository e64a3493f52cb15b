// Package config loads runtime settings from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/evalgate/evalgate/internal/evaluator"
)

// Provider names accepted in EVALGATE_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// Settings holds everything the CLI needs to assemble a run. Every
// field has an environment default; command-line flags may override the
// threshold and directories after loading.
type Settings struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	Threshold   float64
	DatasetsDir string
	ReportDir   string

	SaveJSON bool
	SaveHTML bool

	// HistoryDB is the SQLite file path for run history. Empty disables
	// archiving.
	HistoryDB string

	// RequestsPerMinute caps judge traffic. Zero disables rate limiting.
	RequestsPerMinute int
}

// Load reads settings from the environment, applying defaults for
// everything unset. It never validates credentials; call Validate once
// the provider choice is final.
func Load() (*Settings, error) {
	s := &Settings{
		Provider:     envOr("EVALGATE_PROVIDER", ProviderGemini),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
		DatasetsDir:  envOr("EVALGATE_DATASETS_DIR", "./datasets"),
		ReportDir:    envOr("EVALGATE_REPORT_DIR", "./reports"),
		HistoryDB:    os.Getenv("EVALGATE_HISTORY_DB"),
		Threshold:    evaluator.DefaultThreshold,
		SaveJSON:     true,
		SaveHTML:     true,
	}

	if v := os.Getenv("EVALGATE_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("EVALGATE_THRESHOLD %q: %w", v, err)
		}
		if threshold <= 0 || threshold > 1 {
			return nil, fmt.Errorf("EVALGATE_THRESHOLD %v out of range (0, 1]", threshold)
		}
		s.Threshold = threshold
	}

	var err error
	if s.SaveJSON, err = envBool("EVALGATE_SAVE_JSON", true); err != nil {
		return nil, err
	}
	if s.SaveHTML, err = envBool("EVALGATE_SAVE_HTML", true); err != nil {
		return nil, err
	}

	if v := os.Getenv("EVALGATE_RPM"); v != "" {
		rpm, err := strconv.Atoi(v)
		if err != nil || rpm < 0 {
			return nil, fmt.Errorf("EVALGATE_RPM %q must be a non-negative integer", v)
		}
		s.RequestsPerMinute = rpm
	}

	return s, nil
}

// Validate checks that the selected provider has the credentials it
// needs. The mock provider needs none.
func (s *Settings) Validate() error {
	switch s.Provider {
	case ProviderGemini:
		if s.GeminiAPIKey == "" || s.GeminiAPIKey == "your_api_key_here" {
			return fmt.Errorf("GEMINI_API_KEY is not set")
		}
	case ProviderOpenAI:
		if s.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is not set")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown provider %q (want gemini, openai, or mock)", s.Provider)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s %q: %w", key, v, err)
	}
	return b, nil
}
