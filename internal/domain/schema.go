package domain

import (
	"fmt"
	"strings"
	"time"
)

// FieldKind tags the runtime type of a schema-defined application field.
type FieldKind string

const (
	FieldText        FieldKind = "text"
	FieldTextarea    FieldKind = "textarea"
	FieldEmail       FieldKind = "email"
	FieldPhone       FieldKind = "phone"
	FieldURL         FieldKind = "url"
	FieldNumber      FieldKind = "number"
	FieldBoolean     FieldKind = "boolean"
	FieldSelect      FieldKind = "select"
	FieldMultiselect FieldKind = "multiselect"
	FieldDate        FieldKind = "date"
	FieldFile        FieldKind = "file"
)

// FieldDef describes one custom application field as served by the
// application-schema endpoint.
type FieldDef struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"type"`
	Section  string    `json:"section,omitempty"`
	Options  []string  `json:"options,omitempty"`
	Required bool      `json:"required"`
	Position int       `json:"position"`
}

// ApplicationSchema is the per-popup custom field catalog. It drives
// label and formatter lookup for Application.CustomFields.
type ApplicationSchema struct {
	PopupID int64      `json:"popup_city_id"`
	Fields  []FieldDef `json:"fields"`
}

// FieldByName returns the definition for a field name, if present.
func (s *ApplicationSchema) FieldByName(name string) (FieldDef, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Label returns the display label for a field name, falling back to the
// raw name for fields the schema does not know about.
func (s *ApplicationSchema) Label(name string) string {
	if f, ok := s.FieldByName(name); ok && f.Label != "" {
		return f.Label
	}
	return name
}

type fieldFormatter func(any) string

// formatters is the per-kind dispatch table. Unknown kinds fall through
// to the text formatter.
var formatters = map[FieldKind]fieldFormatter{
	FieldText:        formatText,
	FieldTextarea:    formatText,
	FieldEmail:       formatText,
	FieldPhone:       formatText,
	FieldURL:         formatText,
	FieldFile:        formatText,
	FieldSelect:      formatText,
	FieldNumber:      formatNumber,
	FieldBoolean:     formatBoolean,
	FieldMultiselect: formatMultiselect,
	FieldDate:        formatDate,
}

// FormatFieldValue renders a custom field value for display according to
// its declared kind. Nil and empty values render as a dash so tables
// stay aligned.
func FormatFieldValue(kind FieldKind, value any) string {
	if value == nil {
		return "-"
	}
	format, ok := formatters[kind]
	if !ok {
		format = formatText
	}
	out := format(value)
	if out == "" {
		return "-"
	}
	return out
}

func formatText(v any) string {
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	default:
		return formatText(v)
	}
}

func formatBoolean(v any) string {
	switch b := v.(type) {
	case bool:
		if b {
			return "Yes"
		}
		return "No"
	case string:
		if b == "true" || b == "yes" || b == "1" {
			return "Yes"
		}
		return "No"
	}
	return formatText(v)
}

func formatMultiselect(v any) string {
	switch items := v.(type) {
	case []string:
		return strings.Join(items, ", ")
	case []any:
		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, formatText(it))
		}
		return strings.Join(parts, ", ")
	}
	return formatText(v)
}

func formatDate(v any) string {
	s, ok := v.(string)
	if !ok {
		return formatText(v)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}
