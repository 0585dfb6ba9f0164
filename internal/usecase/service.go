package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/riskibarqy/go-commitsuggest/internal/commit"
	"github.com/riskibarqy/go-commitsuggest/internal/generator"
	"github.com/riskibarqy/go-commitsuggest/internal/git"
	"github.com/riskibarqy/go-commitsuggest/internal/prompt"
	"github.com/riskibarqy/go-commitsuggest/internal/rules"
	"github.com/riskibarqy/go-commitsuggest/internal/util"
)

// ErrNoStagedChanges is returned when there is nothing to describe.
var ErrNoStagedChanges = errors.New("no staged changes detected")

// Service orchestrates the review and commit message generation flow.
type Service struct {
	Repo      git.Repository
	Rules     rules.Store
	Backend   generator.Backend
	Generator *generator.Controller
	Log       zerolog.Logger
}

// Result captures the outputs of the use case.
type Result struct {
	Review     string
	ReviewErr  error
	Candidates []string
	DiffUsed   string
	Branch     string
}

// Options is a light copy of the config options needed inside the use case.
type Options struct {
	Model       string
	ReviewModel string
	MaxBytes    int
	Review      bool
	Mode        commit.Mode
}

// NewService wires a Controller over backend. rulesStore may be nil.
func NewService(repo git.Repository, rulesStore rules.Store, backend generator.Backend, log zerolog.Logger) *Service {
	return &Service{
		Repo:      repo,
		Rules:     rulesStore,
		Backend:   backend,
		Generator: generator.New(backend, generator.WithLogger(log)),
		Log:       log,
	}
}

// Execute performs the review+generation workflow.
func (s *Service) Execute(ctx context.Context, opts Options) (Result, error) {
	if s == nil || s.Repo == nil || s.Backend == nil || s.Generator == nil {
		return Result{}, errors.New("service not properly initialized")
	}

	if opts.ReviewModel == "" {
		opts.ReviewModel = opts.Model
	}

	diff, err := s.Repo.StagedDiff(ctx)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(diff) == "" {
		return Result{}, ErrNoStagedChanges
	}

	diff = util.TrimTo(git.SummarizeDiff(diff), opts.MaxBytes)

	stat, err := s.Repo.StagedStat(ctx)
	if err != nil {
		s.Log.Warn().Err(err).Msg("diffstat unavailable")
		stat = ""
	}

	branch, err := s.Repo.CurrentBranch(ctx)
	if err != nil {
		return Result{}, err
	}

	var policies []string
	if s.Rules != nil {
		policies, err = s.Rules.List()
		if err != nil {
			return Result{}, fmt.Errorf("load rules: %w", err)
		}
	}

	result := Result{
		DiffUsed: diff,
		Branch:   branch,
	}

	if opts.Review {
		review, err := s.Backend.Generate(ctx, generator.Request{
			Model:    opts.ReviewModel,
			System:   prompt.ReviewSystem,
			Prompt:   prompt.Review(diff),
			Sampling: generator.Sampling{Temperature: 0.1, MaxOutputTokens: 200, RepetitionPenalty: 1.1},
		})
		if err != nil {
			result.ReviewErr = err
		} else {
			result.Review = strings.TrimSpace(commit.StripReasoning(review))
		}
	}

	s.Log.Debug().
		Str("model", opts.Model).
		Str("mode", opts.Mode.String()).
		Int("rules", len(policies)).
		Int("diff_bytes", len(diff)).
		Msg("generating candidates")

	candidates, err := s.Generator.Generate(ctx, prompt.System(opts.Mode, policies), prompt.User(diff, stat, branch), opts.Model, opts.Mode)
	if err != nil {
		return Result{}, err
	}

	result.Candidates = candidates
	return result, nil
}
