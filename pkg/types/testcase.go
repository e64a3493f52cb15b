// Package types defines the data model shared between the evaluation core
// and its collaborators: test cases, metrics, results, and the error
// taxonomy surfaced to callers.
package types

import "strings"

// System identifies which subsystem kind a dataset and an evaluation run
// belong to.
type System string

const (
	SystemRAG     System = "rag"
	SystemAgent   System = "agent"
	SystemChatbot System = "chatbot"
)

// DisplayName returns the human-readable name used in reports.
func (s System) DisplayName() string {
	switch s {
	case SystemRAG:
		return "RAG"
	case SystemAgent:
		return "Agent"
	case SystemChatbot:
		return "Chatbot"
	default:
		return string(s)
	}
}

// TestCase is one recorded input/output unit to be scored. Instances are
// constructed once by the dataset loader and never mutated afterwards.
//
// Input and ActualOutput are required for every kind. ExpectedOutput is
// required for RAG and Agent cases. Context holds the retrieved documents
// and is required for RAG cases only.
type TestCase struct {
	Input          string   `json:"input"`
	ActualOutput   string   `json:"actual_output"`
	ExpectedOutput string   `json:"expected_output,omitempty"`
	Context        []string `json:"context,omitempty"`
}

// Validate checks the fields required by the given subsystem kind. index is
// the case's position in the dataset and is carried into the returned
// *MalformedTestCaseError.
func (tc *TestCase) Validate(sys System, index int) error {
	if strings.TrimSpace(tc.Input) == "" {
		return &MalformedTestCaseError{System: sys, Index: index, Field: "input"}
	}
	if strings.TrimSpace(tc.ActualOutput) == "" {
		return &MalformedTestCaseError{System: sys, Index: index, Field: "actual_output"}
	}
	switch sys {
	case SystemRAG:
		if strings.TrimSpace(tc.ExpectedOutput) == "" {
			return &MalformedTestCaseError{System: sys, Index: index, Field: "expected_output"}
		}
		if len(tc.Context) == 0 {
			return &MalformedTestCaseError{System: sys, Index: index, Field: "context"}
		}
	case SystemAgent:
		if strings.TrimSpace(tc.ExpectedOutput) == "" {
			return &MalformedTestCaseError{System: sys, Index: index, Field: "expected_output"}
		}
	}
	return nil
}
