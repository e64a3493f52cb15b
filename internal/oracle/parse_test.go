package oracle

import "testing"

func TestParseScoreResult(t *testing.T) {
	cases := []struct {
		name    string
		content string
		score   float64
		wantErr bool
	}{
		{
			name:    "plain json",
			content: `{"score": 0.85, "explanation": "grounded"}`,
			score:   0.85,
		},
		{
			name:    "code fenced",
			content: "```json\n{\"score\": 0.5, \"explanation\": \"partial\"}\n```",
			score:   0.5,
		},
		{
			name:    "prose wrapped",
			content: `Here is my verdict: {"score": 1.0, "explanation": "perfect"} as requested.`,
			score:   1.0,
		},
		{
			name:    "zero score",
			content: `{"score": 0.0, "explanation": "no toxic content"}`,
			score:   0.0,
		},
		{
			name:    "no json",
			content: "the answer looks fine to me",
			wantErr: true,
		},
		{
			name:    "score above one",
			content: `{"score": 1.5, "explanation": "x"}`,
			wantErr: true,
		},
		{
			name:    "negative score",
			content: `{"score": -0.1, "explanation": "x"}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			content: `{"score": "high"}`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _, err := ParseScoreResult(tc.content)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseScoreResult(%q) succeeded, want error", tc.content)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScoreResult(%q): %v", tc.content, err)
			}
			if score != tc.score {
				t.Errorf("score = %v, want %v", score, tc.score)
			}
		})
	}
}
