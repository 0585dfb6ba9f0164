package generator

import "context"

// Sampling holds the decoding parameters for one backend call.
type Sampling struct {
	Temperature       float64
	MaxOutputTokens   int
	RepetitionPenalty float64
}

// Request is a single prompt sent to the model backend. Format is an optional
// output-shape hint: a JSON schema value or the string "json".
type Request struct {
	Model    string
	System   string
	Prompt   string
	Format   any
	Sampling Sampling
}

// Backend submits one request and returns the raw model text.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, req Request) (string, error)

func (f BackendFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
