package presenters

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/viewstate"
)

var summaryTemplate = template.Must(template.New("summary").Parse(`{{ .SummaryTitle }}

  Project:        {{ .ProjectID }}{{ if .ScanID }}
  Scan:           {{ .ScanID }}{{ end }}
  Scan types:     {{ .Kinds }}

  Total issues:   {{ .TotalIssueCount }}{{ if .TotalIssueCount }}
  By severity:   {{ .IssueCountWithSeverities }}{{ end }}`))

var summarySeverities = []findings.Severity{
	findings.SeverityCritical,
	findings.SeverityHigh,
	findings.SeverityMedium,
	findings.SeverityLow,
	findings.SeverityInfo,
}

// RenderResults renders a results snapshot: status, error or notice, the findings of every loaded
// kind ordered by severity and a summary.
func RenderResults(state viewstate.ResultsState) (string, error) {
	var response strings.Builder

	if state.Busy() {
		response.WriteString(RenderStatus(state))
	}

	if len(state.Error) > 0 {
		response.WriteString(RenderTitle(renderInTokenColor("status.failure", "Scan failed")))
		response.WriteString("   " + state.Error + "\n")
		return response.String(), nil
	}

	if len(state.Notice) > 0 {
		response.WriteString("\n" + renderInTokenColor("text.muted", state.Notice) + "\n")
	}

	loaded := state.Loaded()
	if len(loaded) == 0 {
		return response.String(), nil
	}

	for _, kind := range loaded {
		response.WriteString(RenderTitle(kind.DisplayName() + " Issues"))

		list := SortBySeverity(state.Findings(kind))
		if len(list) == 0 {
			response.WriteString(renderBold("  There are no issues") + "\n")
			continue
		}
		for _, finding := range list {
			response.WriteString(RenderFinding(finding, false))
		}
		if total := state.Total(kind); total > len(list) {
			response.WriteString(fmt.Sprintf("  Showing %d of %d issues, use --page to see more\n", len(list), total))
		}
	}

	summary, err := RenderSummary(state)
	if err != nil {
		return "", err
	}
	response.WriteString("\n" + summary + "\n")

	return response.String(), nil
}

// RenderStatus renders the stage and progress of a running scan.
func RenderStatus(state viewstate.ResultsState) string {
	return fmt.Sprintf("%s %s\n", renderBold(fmt.Sprintf("[%3.0f%%]", state.Progress)), state.StatusText)
}

func RenderSummary(state viewstate.ResultsState) (string, error) {
	var buff bytes.Buffer

	loaded := state.Loaded()
	kinds := make([]string, 0, len(loaded))
	counts := map[findings.Severity]int{}
	total := 0
	for _, kind := range loaded {
		kinds = append(kinds, kind.DisplayName())
		for _, finding := range state.Findings(kind) {
			counts[finding.Severity]++
			total++
		}
	}

	issueCountWithSeverities := ""
	for _, severity := range summarySeverities {
		issueCountWithSeverities += severityCount(string(severity), counts[severity])
	}
	if unknown := counts[findings.SeverityUnknown]; unknown > 0 {
		issueCountWithSeverities += severityCount(string(findings.SeverityUnknown), unknown)
	}

	err := summaryTemplate.Execute(&buff, struct {
		SummaryTitle             string
		ProjectID                string
		ScanID                   string
		Kinds                    string
		TotalIssueCount          int
		IssueCountWithSeverities string
	}{
		SummaryTitle:             renderBold("Scan Summary"),
		ProjectID:                state.ProjectID,
		ScanID:                   state.ScanID,
		Kinds:                    strings.Join(kinds, ", "),
		TotalIssueCount:          total,
		IssueCountWithSeverities: issueCountWithSeverities,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate scan summary from template: %w", err)
	}

	return boxStyle.Render(buff.String()), nil
}

// SortBySeverity returns a copy of list, most severe first. The order of equally severe findings
// is kept.
func SortBySeverity(list []findings.Finding) []findings.Finding {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b findings.Finding) int {
		return b.Severity.Rank() - a.Severity.Rank()
	})
	return sorted
}

func RenderTitle(str string) string {
	return fmt.Sprintf("\n%s\n\n", renderBold(str))
}

func RenderDivider() string {
	return "─────────────────────────────────────────────────────\n"
}

func severityCount(severity string, count int) string {
	return renderInSeverityColor(severity, " "+strconv.Itoa(count)+" "+strings.ToUpper(severity)+" ")
}
