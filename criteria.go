package grader

import "encoding/json"

// Criteria configures structural grading of a single output.
//
// Pointer and slice fields distinguish "unset" from "empty": a nil
// RequiredWords means the criterion is inactive, while an empty slice means
// "require nothing". Callers build one Criteria per test case.
type Criteria struct {
	MinLength            *int     `json:"min_length,omitempty"`
	MaxLength            *int     `json:"max_length,omitempty"`
	RequiredWords        []string `json:"required_words,omitempty"`
	ForbiddenWords       []string `json:"forbidden_words,omitempty"`
	SyntaxCheck          bool     `json:"syntax_check"`
	ReadabilityThreshold float64  `json:"readability_threshold"`
}

// DefaultCriteria returns the default structural criteria: syntax checking
// enabled and a readability threshold of 7.0.
func DefaultCriteria() Criteria {
	return Criteria{
		SyntaxCheck:          true,
		ReadabilityThreshold: 7.0,
	}
}

// UnmarshalJSON decodes criteria on top of the defaults, so a partial
// grading_config object keeps syntax checking enabled and the standard
// readability threshold.
func (c *Criteria) UnmarshalJSON(data []byte) error {
	type alias Criteria
	a := alias(DefaultCriteria())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Criteria(a)
	return nil
}

// Schema is the JSON Schema subset supported by the JSON validator:
// type (object|array|string|number|boolean), required, and recursive
// properties. No oneOf/anyOf/pattern/enum.
type Schema struct {
	Type       string             `json:"type,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
}

// FormatCriteria configures one format validation pass. Fields that do not
// apply to the active format are ignored by the validator.
type FormatCriteria struct {
	// Output format requirements.
	RequiredFormat    string            `json:"required_format,omitempty"` // json, xml, markdown, csv, yaml
	RequiredStructure map[string]string `json:"required_structure,omitempty"`
	RequiredFields    []string          `json:"required_fields,omitempty"`
	ForbiddenFields   []string          `json:"forbidden_fields,omitempty"`

	// Format-specific validation.
	ValidateJSONSchema bool    `json:"validate_json_schema,omitempty"`
	JSONSchema         *Schema `json:"json_schema,omitempty"`
	XMLValidation      bool    `json:"xml_validation,omitempty"`
	XMLSchema          string  `json:"xml_schema,omitempty"`

	// Content structure.
	RequiredSections []string `json:"required_sections,omitempty"`
	RequiredHeaders  []string `json:"required_headers,omitempty"`

	// Style and presentation.
	RequireCodeBlocks   bool `json:"require_code_blocks,omitempty"`
	RequireBulletPoints bool `json:"require_bullet_points,omitempty"`
	RequireNumbering    bool `json:"require_numbering,omitempty"`
	RequireTables       bool `json:"require_tables,omitempty"`
}
