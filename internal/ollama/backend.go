package ollama

import (
	"context"

	"github.com/riskibarqy/go-commitsuggest/internal/generator"
)

// Backend binds a Client to one endpoint so it satisfies generator.Backend.
type Backend struct {
	Client   *Client
	Endpoint string
}

func NewBackend(client *Client, endpoint string) *Backend {
	return &Backend{Client: client, Endpoint: endpoint}
}

func (b *Backend) Generate(ctx context.Context, req generator.Request) (string, error) {
	return b.Client.Generate(ctx, b.Endpoint, Request{
		Model:  req.Model,
		Prompt: req.Prompt,
		System: req.System,
		Format: req.Format,
		Options: &Options{
			Temperature:   req.Sampling.Temperature,
			TopP:          0.9,
			NumPredict:    req.Sampling.MaxOutputTokens,
			RepeatPenalty: req.Sampling.RepetitionPenalty,
		},
	})
}
