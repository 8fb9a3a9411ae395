package validation

import (
	"errors"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/definition"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// SchemaIssue is a single problem found in a schema, with the dotted field
// path and definition option when known.
type SchemaIssue struct {
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Option  string `json:"option,omitempty" yaml:"option,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (i SchemaIssue) String() string {
	var b strings.Builder
	if i.Field != "" {
		b.WriteString(i.Field)
		if i.Option != "" {
			b.WriteString(" [" + i.Option + "]")
		}
		b.WriteString(": ")
	}
	b.WriteString(i.Message)
	return b.String()
}

// SchemaValidationResult captures validation outcomes.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid" yaml:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// SchemaValidationOptions configures ValidateSchema.
type SchemaValidationOptions struct {
	// Filters resolves filter names used by the schema.
	Filters schema.FilterResolver
}

// ValidateSchema decodes raw as a declarative schema and reports every
// malformed definition. Decode failures are reported as a single issue.
func ValidateSchema(src schema.Source, raw []byte, opts SchemaValidationOptions) SchemaValidationResult {
	if src == nil {
		src = schema.SourceInline("schema")
	}
	doc, err := schema.NewDocument(src, raw)
	if err != nil {
		return invalid(issueFromError(err))
	}
	defs, err := schema.Decode(doc, opts.Filters)
	if err != nil {
		return invalid(issueFromError(err))
	}
	return ValidateDefinitions(defs)
}

// ValidateDefinitions checks defs, nested schemas included, regardless of the
// dev-mode flag.
func ValidateDefinitions(defs definition.Map) SchemaValidationResult {
	errs := definition.ValidateMap(defs)
	if len(errs) == 0 {
		return SchemaValidationResult{Valid: true}
	}
	issues := make([]SchemaIssue, 0, len(errs))
	for _, err := range errs {
		issues = append(issues, issueFromError(err))
	}
	return SchemaValidationResult{Valid: false, Issues: issues}
}

func invalid(issue SchemaIssue) SchemaValidationResult {
	return SchemaValidationResult{Valid: false, Issues: []SchemaIssue{issue}}
}

func issueFromError(err error) SchemaIssue {
	if err == nil {
		return SchemaIssue{Message: "unknown error"}
	}
	var defErr *definition.DefinitionError
	if errors.As(err, &defErr) {
		msg := defErr.Message
		if msg == "" && defErr.Err != nil {
			msg = trimPrefixes(defErr.Err.Error())
		}
		return SchemaIssue{Field: defErr.Field, Option: defErr.Option, Message: msg}
	}
	return SchemaIssue{Message: trimPrefixes(err.Error())}
}

func trimPrefixes(msg string) string {
	msg = strings.TrimSpace(msg)
	msg = strings.TrimPrefix(msg, "schema: ")
	msg = strings.TrimPrefix(msg, "definition: ")
	return strings.TrimSpace(msg)
}
