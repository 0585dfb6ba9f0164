package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Repository exposes git operations required by the application.
type Repository interface {
	StagedDiff(ctx context.Context) (string, error)
	StagedStat(ctx context.Context) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
	Commit(ctx context.Context, message string) error
	WriteHook(path, message string) error
}

// CLIRepository executes git commands through the local CLI.
type CLIRepository struct {
	Exec func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewCLIRepository returns a concrete Repository backed by the system git binary.
func NewCLIRepository() *CLIRepository {
	return &CLIRepository{
		Exec: func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, name, args...)
		},
	}
}

func (r *CLIRepository) run(ctx context.Context, args ...string) (string, error) {
	cmd := r.Exec(ctx, "git", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %v\n%s", args[0], err, out.String())
	}
	return out.String(), nil
}

// StagedDiff returns the staged changes without context lines, with rename detection.
func (r *CLIRepository) StagedDiff(ctx context.Context) (string, error) {
	return r.run(ctx, "diff", "--staged", "-U0", "-M")
}

// StagedStat returns the short per-file summary of the staged changes.
func (r *CLIRepository) StagedStat(ctx context.Context) (string, error) {
	return r.run(ctx, "diff", "--staged", "--stat", "-M")
}

func (r *CLIRepository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}

	branch := strings.TrimSpace(out)
	if branch != "" && branch != "HEAD" {
		return branch, nil
	}

	// Detached HEAD
	out, err = r.run(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Commit records the staged changes with message read from stdin, so
// multi-paragraph bodies survive unchanged.
func (r *CLIRepository) Commit(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("empty commit message")
	}

	cmd := r.Exec(ctx, "git", "commit", "-F", "-")
	cmd.Stdin = strings.NewReader(message + "\n")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (r *CLIRepository) WriteHook(path, message string) error {
	return os.WriteFile(path, []byte(message+"\n"), 0o644)
}
