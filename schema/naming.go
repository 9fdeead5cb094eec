package schema

import (
	"regexp"
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

// Naming utilities for mapping Go field and entity names onto database
// column and table names. Conversion is a total function: an unmapped field
// simply gets the default-converted form, which may later fail column
// validation if no such column exists.

// pluralizeClient is a singleton instance for consistent pluralization behavior.
var pluralizeClient = pluralizer.NewClient()

// Override rewrites field names that match a pattern. The replacement is
// used verbatim as the column name, bypassing case conversion.
type Override struct {
	Pattern *regexp.Regexp
	Replace string
}

// Converter maps field names to column names and back. The zero value (via
// NewConverter) applies camelCase to snake_case conversion with no
// overrides. Converters are immutable after construction and safe for
// concurrent use.
type Converter struct {
	identity  bool
	overrides []Override
}

type ConverterOption func(*Converter)

// WithOverride adds a field-name rewrite rule. Overrides are tried in the
// order given; the first matching pattern wins. The pattern is applied as a
// partial-match substitution, so anchor it (^...$) for exact matches.
// Panics on an invalid pattern, consistent with regexp.MustCompile.
func WithOverride(pattern, replace string) ConverterOption {
	re := regexp.MustCompile(pattern)
	return func(c *Converter) {
		c.overrides = append(c.overrides, Override{Pattern: re, Replace: replace})
	}
}

// WithoutConversion makes ToColumn the identity function for names no
// override matches.
func WithoutConversion() ConverterOption {
	return func(c *Converter) {
		c.identity = true
	}
}

func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// extend returns a copy with additional options applied after the existing
// ones, used for per-entity override rules.
func (c *Converter) extend(opts ...ConverterOption) *Converter {
	next := &Converter{
		identity:  c.identity,
		overrides: append([]Override(nil), c.overrides...),
	}
	for _, opt := range opts {
		opt(next)
	}
	return next
}

// ToColumn converts a field name to its column name.
func (c *Converter) ToColumn(field string) string {
	for _, o := range c.overrides {
		if o.Pattern.MatchString(field) {
			return o.Pattern.ReplaceAllString(field, o.Replace)
		}
	}
	if c.identity {
		return field
	}
	return toSnakeCase(field)
}

// ToField converts a column name back to a field name. Best effort, used
// only for diagnostics; overrides are not inverted.
func (c *Converter) ToField(column string) string {
	if c.identity {
		return column
	}
	return toCamelCase(column)
}

// DeriveTableName converts an entity name to its default table name:
// pluralized snake_case.
func DeriveTableName(entityName string) string {
	return pluralizeClient.Pluralize(toSnakeCase(entityName), 2, false)
}

// toSnakeCase converts camelCase and PascalCase names to snake_case,
// inserting underscores at word boundaries. Runs of uppercase letters are
// kept together so acronyms convert cleanly (UserID -> user_id).
func toSnakeCase(name string) string {
	if name == "" {
		return ""
	}

	// Common acronym-only names.
	switch name {
	case "ID":
		return "id"
	case "UUID":
		return "uuid"
	case "URL":
		return "url"
	case "API":
		return "api"
	case "JSON":
		return "json"
	case "SQL":
		return "sql"
	}

	// Already snake_case.
	if strings.Contains(name, "_") && !hasUpperCase(name) {
		return strings.ToLower(name)
	}

	var result strings.Builder
	result.Grow(len(name) + 10)

	runes := []rune(name)
	for i, r := range runes {
		needsUnderscore := false
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			// aB -> a_b, a1B -> a1_b, ABc -> a_bc
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				needsUnderscore = true
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				needsUnderscore = true
			}
		}
		if needsUnderscore {
			result.WriteByte('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// toCamelCase converts snake_case to camelCase.
func toCamelCase(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Split(name, "_")
	var result strings.Builder
	result.Grow(len(name))
	result.WriteString(strings.ToLower(parts[0]))
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// hasUpperCase returns true if the string contains any uppercase letters.
func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
