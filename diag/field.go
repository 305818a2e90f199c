package diag

import "fmt"

// FieldError is a runtime validation failure for one field.
type FieldError struct {
	// Field is the dot-path of the value, with `[i]` for array elements.
	Field string `json:"field" yaml:"field"`
	// Rule is the rule name, empty for shape errors.
	Rule    string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Message string `json:"message" yaml:"message"`
	// Record is the record index when validating document records.
	Record *int `json:"record,omitempty" yaml:"record,omitempty"`
}

func (e FieldError) Error() string {
	if e.Record != nil {
		return fmt.Sprintf("#%d: %s", *e.Record, e.Message)
	}
	return e.Message
}
