package domain

import (
	"fmt"
	"strings"
)

// DefaultSearchFields are the product columns searched when the
// configuration does not override them. Order matters, the first field
// is the boost target in boosted mode.
var DefaultSearchFields = []string{"name", "description"}

// expressionBuilders maps each search mode to its expression strategy.
// One pure function per mode, selected by the enum.
var expressionBuilders = map[SearchMode]func(term string, fields []string) string{
	SearchModeBasic:   basicExpression,
	SearchModeBoolean: booleanExpression,
	SearchModePhrase:  phraseExpression,
	SearchModeFuzzy:   fuzzyExpression,
	SearchModeBoosted: boostedExpression,
}

// BuildExpression turns a raw query into a field-qualified search
// expression for the given mode. Fields are consumed in order, the
// first one is the boost target in boosted mode.
func BuildExpression(query string, mode SearchMode, fields []string) (string, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return "", fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}
	build, ok := expressionBuilders[mode]
	if !ok {
		return "", fmt.Errorf("%w: unknown search mode %q", ErrInvalidInput, mode)
	}
	return build(term, fields), nil
}

// basicExpression matches the term against every field: "name:q OR description:q".
func basicExpression(term string, fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+":"+term)
	}
	return strings.Join(parts, " OR ")
}

// booleanExpression trusts the caller to supply the full boolean
// grammar. The term reaches the index parser untouched, so operator
// syntax is accepted directly from the caller.
func booleanExpression(term string, _ []string) string {
	return term
}

// phraseExpression quotes the term per field: `name:"q"`.
func phraseExpression(term string, fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+`:"`+term+`"`)
	}
	return strings.Join(parts, " OR ")
}

// fuzzyExpression tolerates one edit per term: "name:q~1".
func fuzzyExpression(term string, fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+":"+term+"~1")
	}
	return strings.Join(parts, " OR ")
}

// boostedExpression doubles the weight of the first field:
// "name:q^2 OR description:q".
func boostedExpression(term string, fields []string) string {
	parts := make([]string, 0, len(fields))
	for i, f := range fields {
		if i == 0 {
			parts = append(parts, f+":"+term+"^2")
			continue
		}
		parts = append(parts, f+":"+term)
	}
	return strings.Join(parts, " OR ")
}
