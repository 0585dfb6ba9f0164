package prompt

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/riskibarqy/go-commitsuggest/internal/commit"
)

// CandidateField is the single property of the structured output object.
const CandidateField = "messages"

// CandidateSchema describes {"messages": [s1, s2, s3]} with no other fields.
// Backends with shape-constrained decoding use it; others ignore it.
func CandidateSchema() *jsonschema.Schema {
	n := commit.MaxCandidates
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			CandidateField: {
				Type:     "array",
				Items:    &jsonschema.Schema{Type: "string"},
				MinItems: &n,
				MaxItems: &n,
			},
		},
		Required:             []string{CandidateField},
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}
