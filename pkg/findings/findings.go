// Package findings holds the vulnerabilities reported by the scanning service. A Finding is one of
// three variants selected by its Kind; the variant specific data lives in Location, Package and
// DataFlow.
package findings

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type Kind string

const (
	KindSAST Kind = "sast"
	KindIaC  Kind = "iac"
	KindSCA  Kind = "sca"
)

// Kinds lists all variants in the order they are presented.
var Kinds = []Kind{KindSAST, KindIaC, KindSCA}

func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	switch kind {
	case KindSAST, KindIaC, KindSCA:
		return kind, nil
	}
	return "", fmt.Errorf("unknown scan type %q, expected one of sast, iac, sca", value)
}

func (k Kind) DisplayName() string {
	switch k {
	case KindSAST:
		return "SAST"
	case KindIaC:
		return "IaC"
	case KindSCA:
		return "SCA"
	}
	return string(k)
}

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
	SeverityUnknown  Severity = "UNKNOWN"
)

var severityRank = map[Severity]int{
	SeverityCritical: 5,
	SeverityHigh:     4,
	SeverityMedium:   3,
	SeverityLow:      2,
	SeverityInfo:     1,
}

func ParseSeverity(value string) Severity {
	severity := Severity(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := severityRank[severity]; ok {
		return severity
	}
	return SeverityUnknown
}

// Rank orders severities, higher is more severe. Unknown severities rank lowest.
func (s Severity) Rank() int {
	return severityRank[s]
}

type Location struct {
	Path      string `json:"path" validate:"required"`
	StartLine int    `json:"startLine" validate:"gte=0"`
	EndLine   int    `json:"endLine,omitempty" validate:"gte=0"`
}

type Package struct {
	Name    string `json:"name" validate:"required"`
	Version string `json:"version"`
	// Manifest is the file the package was declared in, e.g. package.json.
	Manifest string `json:"manifest,omitempty"`
}

type DataFlowStep struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet,omitempty"`
}

type Finding struct {
	Kind        Kind     `json:"kind" validate:"required,oneof=sast iac sca"`
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title"`
	Severity    Severity `json:"severity"`
	Status      string   `json:"status,omitempty"`
	RuleName    string   `json:"ruleName,omitempty"`
	CWE         []string `json:"cwe,omitempty"`
	Description string   `json:"description,omitempty"`
	Remediation string   `json:"remediation,omitempty"`
	Language    string   `json:"language,omitempty"`

	// Location is set for sast and iac findings.
	Location *Location `json:"location,omitempty"`
	// Package is set for sca findings.
	Package  *Package       `json:"package,omitempty"`
	DataFlow []DataFlowStep `json:"dataFlow,omitempty"`
}

// Where describes the location of the finding, path and line or package and version.
func (f Finding) Where() string {
	switch {
	case f.Package != nil:
		if len(f.Package.Version) == 0 {
			return f.Package.Name
		}
		return f.Package.Name + "@" + f.Package.Version
	case f.Location != nil && f.Location.StartLine > 0:
		return fmt.Sprintf("%s:%d", f.Location.Path, f.Location.StartLine)
	case f.Location != nil:
		return f.Location.Path
	}
	return ""
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks that a finding carries the data its variant requires. It is called once when
// findings enter the process.
func Validate(f Finding) error {
	validateOnce.Do(func() {
		validate = validator.New()
	})

	if err := validate.Struct(f); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			details := make([]string, 0, len(fieldErrors))
			for _, fieldError := range fieldErrors {
				details = append(details, describeFieldError(fieldError))
			}
			return fmt.Errorf("invalid %s finding %q: %s", f.Kind, f.ID, strings.Join(details, ", "))
		}
		return fmt.Errorf("invalid %s finding %q: %w", f.Kind, f.ID, err)
	}

	switch {
	case f.Kind == KindSCA && f.Package == nil:
		return fmt.Errorf("invalid %s finding %q: package information is missing", f.Kind, f.ID)
	case f.Kind != KindSCA && f.Location == nil:
		return fmt.Errorf("invalid %s finding %q: location is missing", f.Kind, f.ID)
	case f.Kind != KindSCA && f.Package != nil:
		return fmt.Errorf("invalid %s finding %q: package information is only valid for sca", f.Kind, f.ID)
	}
	if f.Kind != KindSAST && len(f.DataFlow) > 0 {
		return fmt.Errorf("invalid %s finding %q: data flow is only valid for sast", f.Kind, f.ID)
	}
	return nil
}

// describeFieldError turns "Finding.Location.Path" with tag "required" into "Location.Path is required".
func describeFieldError(fieldError validator.FieldError) string {
	field := strings.TrimPrefix(fieldError.Namespace(), "Finding.")
	if fieldError.Tag() == "required" {
		return field + " is required"
	}
	return fmt.Sprintf("%s fails %q", field, fieldError.Tag())
}
