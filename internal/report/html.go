package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/evalgate/evalgate/pkg/types"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.System}} Evaluation Report</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 1200px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
.container { background: white; border-radius: 8px; padding: 30px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
h1 { color: #333; border-bottom: 3px solid #007bff; padding-bottom: 10px; }
.metadata { color: #666; font-size: 14px; margin-bottom: 30px; }
.status { font-size: 24px; font-weight: bold; margin: 20px 0; }
.status.pass { color: #28a745; }
.status.fail { color: #dc3545; }
.metrics { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 20px; margin: 30px 0; }
.metric-card { background: #f8f9fa; border-left: 4px solid #007bff; padding: 15px; border-radius: 4px; }
.metric-name { color: #666; font-size: 14px; margin-bottom: 5px; }
.metric-value { font-size: 28px; font-weight: bold; color: #333; }
table { width: 100%; border-collapse: collapse; margin-top: 30px; }
th, td { text-align: left; padding: 12px; border-bottom: 1px solid #ddd; }
th { background-color: #007bff; color: white; font-weight: 600; }
tr:hover { background-color: #f8f9fa; }
td.pass { color: #28a745; font-weight: bold; }
td.fail { color: #dc3545; font-weight: bold; }
.critical { background-color: #f8d7da; border-left: 4px solid #dc3545; padding: 15px; margin: 20px 0; border-radius: 4px; }
</style>
</head>
<body>
<div class="container">
<h1>{{.System}} System Evaluation Report</h1>
<div class="metadata">
<p>Generated: {{.Generated}}</p>
<p>Run ID: {{.RunID}}</p>
<p>Total Test Cases: {{.TotalCases}}</p>
<p>Threshold: {{printf "%.2f" .Threshold}}</p>
</div>
{{if .Passed}}<div class="status pass">&#9989; PASSED</div>{{else}}<div class="status fail">&#10060; FAILED</div>{{end}}
<div class="metrics">
{{range .Metrics}}<div class="metric-card"><div class="metric-name">{{.Name}}</div><div class="metric-value">{{.Value}}</div></div>
{{end}}</div>
{{if .Critical}}<div class="critical">
<h3>&#128680; CRITICAL: Toxic Content Detected</h3>
<p><strong>{{len .ToxicCases}} toxic responses found:</strong></p>
<ul>{{range .ToxicCases}}<li>Test Case {{.Index}}: Score {{.Score}}</li>{{end}}</ul>
</div>{{end}}
<h2>Individual Test Case Results</h2>
<table>
<thead><tr><th>Test ID</th><th>Input</th>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Index}}</td><td>{{.Input}}</td>{{range .Cells}}<td class="{{if .Passed}}pass{{else}}fail{{end}}">{{.Score}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</div>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Parse(htmlTemplate))

type htmlMetric struct {
	Name  string
	Value string
}

type htmlToxicCase struct {
	Index int
	Score string
}

type htmlCell struct {
	Score  string
	Passed bool
}

type htmlRow struct {
	Index int
	Input string
	Cells []htmlCell
}

type htmlData struct {
	System     string
	Generated  string
	RunID      string
	TotalCases int
	Threshold  float64
	Passed     bool
	Critical   bool
	Metrics    []htmlMetric
	ToxicCases []htmlToxicCase
	Headers    []string
	Rows       []htmlRow
}

const maxInputPreview = 80

// GenerateHTMLReport renders a ResultSet as a standalone HTML document.
// Metric columns follow the order the evaluator scored them in, taken
// from the first case.
func GenerateHTMLReport(rs *types.ResultSet) ([]byte, error) {
	data := htmlData{
		System:     rs.System.DisplayName(),
		Generated:  rs.Timestamp.UTC().Format(time.DateTime),
		RunID:      rs.RunID,
		TotalCases: rs.TotalCases(),
		Threshold:  rs.Threshold,
		Passed:     rs.Passed,
		Critical:   rs.Critical,
	}

	var metricOrder []types.Metric
	if len(rs.Cases) > 0 {
		for _, r := range rs.Cases[0].Results {
			metricOrder = append(metricOrder, r.Metric)
		}
	}

	for _, m := range metricOrder {
		data.Headers = append(data.Headers, m.DisplayName())
		if avg, ok := rs.Averages[m]; ok {
			data.Metrics = append(data.Metrics, htmlMetric{
				Name:  "Average " + m.DisplayName(),
				Value: fmt.Sprintf("%.3f", avg),
			})
		}
	}
	data.Metrics = append(data.Metrics, htmlMetric{
		Name:  "Overall Average",
		Value: fmt.Sprintf("%.3f", rs.OverallAverage),
	})

	for i := range rs.Cases {
		c := &rs.Cases[i]
		row := htmlRow{Index: c.Index, Input: truncateInput(c.Input)}
		for _, r := range c.Results {
			row.Cells = append(row.Cells, htmlCell{
				Score:  fmt.Sprintf("%.3f", r.Score),
				Passed: r.Passed(rs.Threshold),
			})
			if r.Metric.ZeroTolerance() && r.Score > types.ZeroToleranceThreshold {
				data.ToxicCases = append(data.ToxicCases, htmlToxicCase{
					Index: c.Index,
					Score: fmt.Sprintf("%.3f", r.Score),
				})
			}
		}
		data.Rows = append(data.Rows, row)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render HTML report: %w", err)
	}
	return buf.Bytes(), nil
}

func truncateInput(s string) string {
	if len(s) <= maxInputPreview {
		return s
	}
	return s[:maxInputPreview] + "..."
}
