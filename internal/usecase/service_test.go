package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/go-commitsuggest/internal/commit"
	"github.com/riskibarqy/go-commitsuggest/internal/generator"
	"github.com/riskibarqy/go-commitsuggest/internal/prompt"
)

type fakeRepo struct {
	diff, stat, branch string
	statErr            error
}

func (f *fakeRepo) StagedDiff(context.Context) (string, error) { return f.diff, nil }
func (f *fakeRepo) StagedStat(context.Context) (string, error) { return f.stat, f.statErr }
func (f *fakeRepo) CurrentBranch(context.Context) (string, error) { return f.branch, nil }
func (f *fakeRepo) Commit(context.Context, string) error { return nil }
func (f *fakeRepo) WriteHook(string, string) error { return nil }

type fakeRules []string

func (r fakeRules) List() ([]string, error) { return r, nil }
func (r fakeRules) Add(string) error { return nil }
func (r fakeRules) Remove(int) (string, error) { return "", nil }
func (r fakeRules) Clear() error { return nil }

type recorder struct {
	requests []generator.Request
	answer   func(generator.Request) (string, error)
}

func (r *recorder) Generate(_ context.Context, req generator.Request) (string, error) {
	r.requests = append(r.requests, req)
	return r.answer(req)
}

func TestExecute(t *testing.T) {
	repo := &fakeRepo{
		diff:   "diff --git a/a.go b/a.go\n+x\ndiff --git a/go.sum b/go.sum\n+h1:secret\n",
		stat:   " a.go | 1 +\n",
		branch: "feature/ABC-1",
	}
	backend := &recorder{answer: func(req generator.Request) (string, error) {
		return `{"messages":["feat: a","fix: b","docs: c"]}`, nil
	}}

	svc := NewService(repo, fakeRules{"mention the ticket"}, backend, zerolog.Nop())
	res, err := svc.Execute(context.Background(), Options{Model: "m", MaxBytes: 10000})
	require.NoError(t, err)
	assert.Equal(t, []string{"feat: a", "fix: b", "docs: c"}, res.Candidates)
	assert.Equal(t, "feature/ABC-1", res.Branch)
	assert.NotContains(t, res.DiffUsed, "h1:secret")

	require.Len(t, backend.requests, 1)
	req := backend.requests[0]
	assert.Contains(t, req.System, "- mention the ticket")
	assert.Contains(t, req.Prompt, "feature/ABC-1")
	assert.Contains(t, req.Prompt, "a.go | 1 +")
}

func TestExecuteNoStagedChanges(t *testing.T) {
	svc := NewService(&fakeRepo{diff: "  \n"}, nil, &recorder{}, zerolog.Nop())
	_, err := svc.Execute(context.Background(), Options{Model: "m"})
	assert.ErrorIs(t, err, ErrNoStagedChanges)
}

func TestExecuteReview(t *testing.T) {
	backend := &recorder{answer: func(req generator.Request) (string, error) {
		if req.System == prompt.ReviewSystem {
			return "<think>hmm</think>No blocking issues found.", nil
		}
		return `["feat: a"]`, nil
	}}
	svc := NewService(&fakeRepo{diff: "diff --git a/a b/a\n+x\n", statErr: errors.New("no stat")}, nil, backend, zerolog.Nop())

	res, err := svc.Execute(context.Background(), Options{Model: "m", ReviewModel: "r", MaxBytes: 100, Review: true, Mode: commit.SingleLine})
	require.NoError(t, err)
	assert.Equal(t, "No blocking issues found.", res.Review)
	assert.NoError(t, res.ReviewErr)
	assert.Equal(t, "r", backend.requests[0].Model)
	assert.Equal(t, []string{"feat: a"}, res.Candidates)
}

func TestExecuteReviewFailureIsAbsorbed(t *testing.T) {
	backend := &recorder{answer: func(req generator.Request) (string, error) {
		if req.System == prompt.ReviewSystem {
			return "", errors.New("review model missing")
		}
		return "feat: a\n\n- detail", nil
	}}
	svc := NewService(&fakeRepo{diff: "diff --git a/a b/a\n+x\n"}, nil, backend, zerolog.Nop())

	res, err := svc.Execute(context.Background(), Options{Model: "m", MaxBytes: 100, Review: true, Mode: commit.SubjectBody})
	require.NoError(t, err)
	assert.Error(t, res.ReviewErr)
	assert.Equal(t, []string{"feat: a\n\n- detail"}, res.Candidates)
}

func TestExecutePropagatesGeneratorErrors(t *testing.T) {
	backend := &recorder{answer: func(generator.Request) (string, error) { return "", nil }}
	svc := NewService(&fakeRepo{diff: "diff --git a/a b/a\n+x\n"}, nil, backend, zerolog.Nop())

	_, err := svc.Execute(context.Background(), Options{Model: "m", MaxBytes: 100})
	assert.ErrorIs(t, err, generator.ErrEmptyOutput)
	assert.Len(t, backend.requests, 3)
}

func TestExecuteTrimsDiff(t *testing.T) {
	long := "diff --git a/a b/a\n" + strings.Repeat("+line\n", 100)
	backend := &recorder{answer: func(generator.Request) (string, error) { return "feat: a", nil }}
	svc := NewService(&fakeRepo{diff: long}, nil, backend, zerolog.Nop())

	res, err := svc.Execute(context.Background(), Options{Model: "m", MaxBytes: 50})
	require.NoError(t, err)
	assert.Contains(t, res.DiffUsed, "[diff truncated]")
}

func TestExecuteUninitialized(t *testing.T) {
	var svc *Service
	_, err := svc.Execute(context.Background(), Options{})
	assert.Error(t, err)
}
