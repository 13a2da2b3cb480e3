package domain

import (
	"errors"
	"testing"
)

var defaultFields = []string{"name", "description"}

func TestBuildExpression(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		mode     SearchMode
		fields   []string
		expected string
	}{
		{
			name:     "basic over two fields",
			query:    "wireless",
			mode:     SearchModeBasic,
			fields:   defaultFields,
			expected: "name:wireless OR description:wireless",
		},
		{
			name:     "basic over one field",
			query:    "laptop",
			mode:     SearchModeBasic,
			fields:   []string{"name"},
			expected: "name:laptop",
		},
		{
			name:     "boolean passes through untouched",
			query:    "name:laptop AND category:Electronics",
			mode:     SearchModeBoolean,
			fields:   defaultFields,
			expected: "name:laptop AND category:Electronics",
		},
		{
			name:     "phrase quotes the term per field",
			query:    "noise cancelling",
			mode:     SearchModePhrase,
			fields:   defaultFields,
			expected: `name:"noise cancelling" OR description:"noise cancelling"`,
		},
		{
			name:     "fuzzy appends an edit distance of one",
			query:    "wireles",
			mode:     SearchModeFuzzy,
			fields:   []string{"name"},
			expected: "name:wireles~1",
		},
		{
			name:     "fuzzy over two fields",
			query:    "headphnes",
			mode:     SearchModeFuzzy,
			fields:   defaultFields,
			expected: "name:headphnes~1 OR description:headphnes~1",
		},
		{
			name:     "boosted doubles the first field only",
			query:    "phone",
			mode:     SearchModeBoosted,
			fields:   defaultFields,
			expected: "name:phone^2 OR description:phone",
		},
		{
			name:     "boosted with a single field",
			query:    "phone",
			mode:     SearchModeBoosted,
			fields:   []string{"name"},
			expected: "name:phone^2",
		},
		{
			name:     "surrounding whitespace is trimmed",
			query:    "  tablet  ",
			mode:     SearchModeBasic,
			fields:   []string{"name"},
			expected: "name:tablet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildExpression(tt.query, tt.mode, tt.fields)
			if err != nil {
				t.Fatalf("BuildExpression() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("BuildExpression() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildExpression_EmptyQuery(t *testing.T) {
	modes := []SearchMode{
		SearchModeBasic,
		SearchModeBoolean,
		SearchModePhrase,
		SearchModeFuzzy,
		SearchModeBoosted,
	}

	for _, mode := range modes {
		for _, query := range []string{"", "   ", "\t\n"} {
			_, err := BuildExpression(query, mode, defaultFields)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("BuildExpression(%q, %s) error = %v, want ErrInvalidInput", query, mode, err)
			}
		}
	}
}

func TestBuildExpression_UnknownMode(t *testing.T) {
	_, err := BuildExpression("phone", SearchMode("regex"), defaultFields)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("BuildExpression() error = %v, want ErrInvalidInput", err)
	}
}
