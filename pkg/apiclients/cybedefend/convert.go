package cybedefend

import (
	"fmt"
	"strings"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
)

// toFinding builds the variant selected by kind, the endpoint a finding was fetched from. A
// vulnerabilityType reported by the service has to agree with it.
func toFinding(kind findings.Kind, entry vulnerabilityEntry) (findings.Finding, error) {
	if reported := strings.TrimSpace(entry.Vulnerability.VulnerabilityType); len(reported) > 0 {
		reportedKind, err := findings.ParseKind(reported)
		if err != nil || reportedKind != kind {
			return findings.Finding{}, fmt.Errorf("finding %q is reported as %q but was fetched as %s", entry.Id, reported, kind)
		}
	}

	finding := findings.Finding{
		Kind:        kind,
		ID:          entry.Id,
		Title:       entry.Vulnerability.Name,
		Severity:    findings.ParseSeverity(entry.CurrentSeverity),
		Status:      entry.CurrentState,
		CWE:         entry.Vulnerability.Cwe,
		Description: entry.Vulnerability.Description,
		Remediation: entry.Vulnerability.HowToPrevent,
		Language:    entry.Language,
	}

	switch kind {
	case findings.KindSCA:
		if entry.ScaDetectedPackage != nil {
			finding.Package = &findings.Package{
				Name:     entry.ScaDetectedPackage.PackageName,
				Version:  entry.ScaDetectedPackage.PackageVersion,
				Manifest: entry.ScaDetectedPackage.FileName,
			}
		}
	default:
		finding.Location = &findings.Location{
			Path:      entry.Path,
			StartLine: entry.VulnerableStartLine,
			EndLine:   entry.VulnerableEndLine,
		}
	}

	if kind == findings.KindSAST {
		for _, item := range entry.DataFlowItems {
			finding.DataFlow = append(finding.DataFlow, findings.DataFlowStep{Path: item.Path, Line: item.Line, Snippet: item.Code})
		}
	}

	if err := findings.Validate(finding); err != nil {
		return findings.Finding{}, err
	}
	return finding, nil
}
