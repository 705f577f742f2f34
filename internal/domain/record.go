package domain

import "fmt"

// Severity indicates how a record affects the validation outcome.
type Severity string

const (
	// SeverityPass marks a check that succeeded.
	SeverityPass Severity = "pass"
	// SeverityWarning marks a finding that should be reviewed but does not fail validation.
	SeverityWarning Severity = "warning"
	// SeverityError marks a finding that fails validation.
	SeverityError Severity = "error"
)

// Tag returns the bracketed report prefix for the severity.
func (s Severity) Tag() string {
	switch s {
	case SeverityPass:
		return "[PASS]"
	case SeverityWarning:
		return "[WARN]"
	default:
		return "[ERROR]"
	}
}

// Kind identifies the check that produced a record.
type Kind string

// Pass kinds.
const (
	KindConfigField      Kind = "config_field"
	KindScenarioExists   Kind = "scenario_exists"
	KindArtifactPresent  Kind = "artifact_present"
	KindFrontmatterField Kind = "frontmatter_field"
)

// Error kinds.
const (
	KindUnitNotFound            Kind = "unit_not_found"
	KindInvalidUnitID           Kind = "invalid_unit_id"
	KindConfigNotFound          Kind = "config_not_found"
	KindConfigParseError        Kind = "config_parse_error"
	KindConfigFieldMissing      Kind = "config_field_missing"
	KindScenarioNotFound        Kind = "scenario_not_found"
	KindInvalidScenarioName     Kind = "invalid_scenario_name"
	KindArtifactMissing         Kind = "artifact_missing"
	KindFrontmatterAbsent       Kind = "frontmatter_absent"
	KindFrontmatterUnclosed     Kind = "frontmatter_unclosed"
	KindFrontmatterParseError   Kind = "frontmatter_parse_error"
	KindFrontmatterFieldMissing Kind = "frontmatter_field_missing"
	KindReadError               Kind = "read_error"
)

// Warning kinds.
const (
	KindConfigScenariosShape     Kind = "config_scenarios_shape"
	KindScenarioNameShape        Kind = "scenario_name_shape"
	KindScenarioNameNotCanonical Kind = "scenario_name_not_canonical"
	KindArtifactWrongKind        Kind = "artifact_wrong_kind"
	KindArtifactEmpty            Kind = "artifact_empty"
	KindEncodingBOM              Kind = "encoding_bom"
	KindEncodingInvalidUTF8      Kind = "encoding_invalid_utf8"
	KindEncodingReplacementChar  Kind = "encoding_replacement_char"
)

// Record is a single line of a validation report.
type Record struct {
	Severity Severity
	Kind     Kind
	Message  string
	Path     string
}

// String renders the record the way it appears in the text report.
func (r Record) String() string {
	return r.Severity.Tag() + " " + r.Message
}

// Result accumulates the records of one validation run. Records are only
// ever appended; each severity keeps its own insertion order.
type Result struct {
	Passed   []Record
	Warnings []Record
	Errors   []Record
}

// IsValid reports whether the run produced no error records.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Pass appends a pass record.
func (r *Result) Pass(kind Kind, path, format string, args ...any) {
	r.Passed = append(r.Passed, newRecord(SeverityPass, kind, path, format, args))
}

// Warn appends a warning record.
func (r *Result) Warn(kind Kind, path, format string, args ...any) {
	r.Warnings = append(r.Warnings, newRecord(SeverityWarning, kind, path, format, args))
}

// Error appends an error record.
func (r *Result) Error(kind Kind, path, format string, args ...any) {
	r.Errors = append(r.Errors, newRecord(SeverityError, kind, path, format, args))
}

// Records returns all records in report order: passes, warnings, errors.
func (r *Result) Records() []Record {
	all := make([]Record, 0, len(r.Passed)+len(r.Warnings)+len(r.Errors))
	all = append(all, r.Passed...)
	all = append(all, r.Warnings...)
	return append(all, r.Errors...)
}

func newRecord(sev Severity, kind Kind, path, format string, args []any) Record {
	return Record{
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
	}
}
