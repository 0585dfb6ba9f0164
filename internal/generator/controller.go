package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/riskibarqy/go-commitsuggest/internal/commit"
	"github.com/riskibarqy/go-commitsuggest/internal/prompt"
	"github.com/riskibarqy/go-commitsuggest/internal/util"
)

var (
	// ErrEmptyOutput means the backend answered every attempt but nothing
	// usable survived normalization and validation.
	ErrEmptyOutput = errors.New("model returned empty or invalid response")
	// ErrServerUnreachable wraps transport failures on the generation path.
	ErrServerUnreachable = errors.New("server unreachable")
)

// Controller drives the retry loop and the subject length repair against a
// Backend. A Controller holds no per-run state and may be reused.
type Controller struct {
	backend Backend
	policy  Policy
	format  any
	log     zerolog.Logger
}

// Option customises a Controller.
type Option func(*Controller)

func WithPolicy(p Policy) Option {
	return func(c *Controller) { c.policy = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithFormat overrides the output-shape hint sent on generation attempts.
// A nil format sends none.
func WithFormat(format any) Option {
	return func(c *Controller) { c.format = format }
}

// New returns a Controller using DefaultPolicy and the candidate schema.
func New(backend Backend, opts ...Option) *Controller {
	c := &Controller{
		backend: backend,
		policy:  DefaultPolicy(),
		format:  prompt.CandidateSchema(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate asks the model for candidates at increasing temperature until
// commit.MaxCandidates valid, unique ones are collected or the attempt budget
// runs out, then shortens any subject over the limit. It returns
// ErrEmptyOutput when nothing valid was produced and ErrServerUnreachable
// when the backend fails during an attempt.
func (c *Controller) Generate(ctx context.Context, system, user, model string, mode commit.Mode) ([]string, error) {
	pool := commit.NewPool(commit.MaxCandidates)

	for k := 0; k < c.policy.Attempts && !pool.Full(); k++ {
		sampling := c.policy.attemptSampling(k, mode)
		raw, err := c.backend.Generate(ctx, Request{
			Model:    model,
			System:   system,
			Prompt:   user,
			Format:   c.format,
			Sampling: sampling,
		})
		if err != nil {
			c.log.Debug().Err(err).Int("attempt", k+1).Msg("generation failed")
			return nil, fmt.Errorf("%w: %w", ErrServerUnreachable, err)
		}

		accepted := 0
		for _, cand := range commit.Normalize(raw, mode) {
			if commit.Valid(cand, mode) && pool.Add(cand) {
				accepted++
			}
		}
		c.log.Debug().
			Int("attempt", k+1).
			Float64("temperature", sampling.Temperature).
			Int("accepted", accepted).
			Int("pool", pool.Len()).
			Msg("generation attempt")
	}

	candidates := pool.Items()
	if len(candidates) > commit.MaxCandidates {
		candidates = candidates[:commit.MaxCandidates]
	}
	if len(candidates) == 0 {
		c.log.Debug().Int("attempts", c.policy.Attempts).Msg("no valid candidates")
		return nil, ErrEmptyOutput
	}

	return c.repairAll(ctx, model, candidates), nil
}

// repairAll shortens each candidate in order. Two candidates can collapse to
// the same subject, so the result is deduplicated again.
func (c *Controller) repairAll(ctx context.Context, model string, candidates []string) []string {
	out := commit.NewPool(commit.MaxCandidates)
	for _, cand := range candidates {
		if !out.Add(c.repair(ctx, model, cand)) {
			c.log.Debug().Str("candidate", cand).Msg("dropped duplicate after repair")
		}
	}
	return out.Items()
}

func (c *Controller) repair(ctx context.Context, model, candidate string) string {
	subject := commit.FirstLine(candidate)
	limit := c.policy.SubjectLimit
	if commit.Length(subject) <= limit {
		return candidate
	}

	raw, err := c.backend.Generate(ctx, Request{
		Model:    model,
		System:   prompt.ShortenSystem,
		Prompt:   prompt.Shorten(subject, limit),
		Sampling: c.policy.repairSampling(),
	})
	if err != nil {
		c.log.Debug().Err(err).Msg("repair failed, truncating")
	} else if short := repairedLine(raw); short != "" && commit.Length(short) <= limit && commit.Valid(short, commit.SingleLine) {
		c.log.Debug().Int("from", commit.Length(subject)).Int("to", commit.Length(short)).Msg("subject repaired")
		return commit.ReplaceFirstLine(candidate, short)
	} else {
		c.log.Debug().Str("reply", short).Msg("repair unusable, truncating")
	}

	return commit.ReplaceFirstLine(candidate, util.Truncate(subject, c.policy.TruncateKeep, c.policy.Ellipsis))
}

// repairedLine keeps the first line of a cleaned repair reply.
func repairedLine(raw string) string {
	text := commit.Clean(commit.StripReasoning(raw))
	return commit.Clean(commit.FirstLine(text))
}
