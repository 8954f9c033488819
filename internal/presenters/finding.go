package presenters

import (
	"fmt"
	"strings"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
)

type FindingProperty struct {
	Label string
	Value string
}

// RenderFinding renders the headline of a finding followed by its properties. With details set the
// description, remediation and data flow are included.
func RenderFinding(finding findings.Finding, details bool) string {
	title := finding.Title
	if len(title) == 0 {
		title = finding.ID
	}

	headline := fmt.Sprintf(" %s %s\n",
		renderInSeverityColor(string(finding.Severity), fmt.Sprintf("✗ [%s]", finding.Severity)),
		renderBold(title),
	)

	return headline + getFormattedProperties(findingProperties(finding, details)) + "\n"
}

func findingProperties(finding findings.Finding, details bool) []FindingProperty {
	properties := []FindingProperty{
		{Label: "ID", Value: finding.ID},
		{Label: "Type", Value: finding.Kind.DisplayName()},
	}

	switch {
	case finding.Package != nil:
		properties = append(properties, FindingProperty{Label: "Package", Value: finding.Where()})
		if len(finding.Package.Manifest) > 0 {
			properties = append(properties, FindingProperty{Label: "Manifest", Value: finding.Package.Manifest})
		}
	case finding.Location != nil:
		properties = append(properties, FindingProperty{Label: "Path", Value: renderLocation(*finding.Location)})
	}

	if len(finding.CWE) > 0 {
		properties = append(properties, FindingProperty{Label: "CWE", Value: strings.Join(finding.CWE, ", ")})
	}
	if len(finding.RuleName) > 0 && finding.RuleName != finding.Title {
		properties = append(properties, FindingProperty{Label: "Rule", Value: finding.RuleName})
	}
	if len(finding.Status) > 0 {
		properties = append(properties, FindingProperty{Label: "Status", Value: finding.Status})
	}

	if !details {
		return properties
	}

	if len(finding.Language) > 0 {
		properties = append(properties, FindingProperty{Label: "Language", Value: finding.Language})
	}
	if len(finding.Description) > 0 {
		properties = append(properties, FindingProperty{}, FindingProperty{Label: "Info", Value: indentContinuation(finding.Description)})
	}
	if len(finding.Remediation) > 0 {
		properties = append(properties, FindingProperty{}, FindingProperty{Label: "Fix", Value: indentContinuation(finding.Remediation)})
	}
	if len(finding.DataFlow) > 0 {
		properties = append(properties, FindingProperty{}, FindingProperty{Label: "Data flow", Value: renderDataFlow(finding.DataFlow)})
	}

	return properties
}

func renderLocation(location findings.Location) string {
	switch {
	case location.EndLine > location.StartLine:
		return fmt.Sprintf("%s, lines %d-%d", location.Path, location.StartLine, location.EndLine)
	case location.StartLine > 0:
		return fmt.Sprintf("%s, line %d", location.Path, location.StartLine)
	}
	return location.Path
}

func renderDataFlow(steps []findings.DataFlowStep) string {
	lines := make([]string, 0, len(steps))
	for i, step := range steps {
		line := fmt.Sprintf("%d. %s:%d", i+1, step.Path, step.Line)
		if snippet := strings.TrimSpace(step.Snippet); len(snippet) > 0 {
			line += "  " + renderInTokenColor("text.muted", snippet)
		}
		lines = append(lines, line)
	}
	return indentContinuation(strings.Join(lines, "\n"))
}

// indentContinuation aligns all but the first line with the property values.
func indentContinuation(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(value), "\n", "\n"+strings.Repeat(" ", propertyValueColumn))
}

// the value column of getFormattedProperties for the longest label, "Data flow:"
const propertyValueColumn = 3 + len("Data flow:") + 2

func getFormattedProperties(properties []FindingProperty) string {
	formattedProperties := ""
	labelAndPropertyFormat := "   %-" + fmt.Sprintf("%d", len("Data flow:")+1) + "s %s\n"

	for _, property := range properties {
		if property.Label == "" {
			formattedProperties += "\n"
			continue
		}
		formattedProperties += fmt.Sprintf(labelAndPropertyFormat, property.Label+":", property.Value)
	}

	return formattedProperties
}
