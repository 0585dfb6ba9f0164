package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/go-commitsuggest/internal/commit"
	"github.com/riskibarqy/go-commitsuggest/internal/config"
	"github.com/riskibarqy/go-commitsuggest/internal/generator"
	"github.com/riskibarqy/go-commitsuggest/internal/git"
	"github.com/riskibarqy/go-commitsuggest/internal/logging"
	"github.com/riskibarqy/go-commitsuggest/internal/ollama"
	"github.com/riskibarqy/go-commitsuggest/internal/picker"
	"github.com/riskibarqy/go-commitsuggest/internal/rules"
	"github.com/riskibarqy/go-commitsuggest/internal/usecase"
)

// App holds the collaborators the commands run against. Tests replace them.
type App struct {
	Repo      git.Repository
	Backend   func(opts config.Options) generator.Backend
	Ping      func(ctx context.Context, opts config.Options) error
	Pick      func(candidates []string) (picker.Choice, error)
	Clipboard picker.Clipboard
	Stdout    io.Writer
	Stderr    io.Writer
}

// DefaultApp talks to the local git binary, Ollama and the terminal.
func DefaultApp() *App {
	return &App{
		Repo: git.NewCLIRepository(),
		Backend: func(opts config.Options) generator.Backend {
			return ollama.NewBackend(ollama.NewClient(opts.Timeout), opts.Endpoint)
		},
		Ping: func(ctx context.Context, opts config.Options) error {
			return ollama.NewClient(opts.Timeout).Ping(ctx, opts.Endpoint)
		},
		Pick:      func(c []string) (picker.Choice, error) { return picker.Run(c) },
		Clipboard: &picker.SystemClipboard{},
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

type rootFlags struct {
	configFile string
	print      bool
	yes        bool
	hookPath   string
}

// NewRootCommand builds the command tree.
func NewRootCommand(app *App) *cobra.Command {
	var rf rootFlags

	cmd := &cobra.Command{
		Use:   "go-commitsuggest",
		Short: "Suggest commit messages for the staged diff using a local model",
		Long: `go-commitsuggest asks an Ollama model for up to three commit messages
describing the staged changes, then lets you pick one to commit or copy.

Configuration is read from flags, environment variables
(OLLAMA_MODEL, OLLAMA_ENDPOINT, COMMITGEN_MAX_BYTES, COMMITGEN_TIMEOUT)
and $HOME/.config/go-commitsuggest/config.yaml, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSuggest(cmd, rf)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&rf.configFile, "config", "", "config file (default $HOME/.config/go-commitsuggest/config.yaml)")
	pf.String("rules-file", "", "rules file (default $HOME/.config/go-commitsuggest/rules.yaml)")
	pf.BoolP("verbose", "v", false, "log generation attempts to stderr")

	f := cmd.Flags()
	f.String("model", "", "Ollama model used for commit generation")
	f.String("review-model", "", "Ollama model used for code review (falls back to --model)")
	f.String("endpoint", "", "Ollama base URL")
	f.Int("max-bytes", 0, "maximum diff bytes sent to the model")
	f.String("timeout", "", "per-request timeout, e.g. 40s or 40")
	f.BoolP("body", "b", false, "generate subject + body messages")
	f.Bool("review", false, "run an AI review before generating")
	f.BoolVarP(&rf.print, "print", "p", false, "print the candidates and exit")
	f.BoolVarP(&rf.yes, "yes", "y", false, "commit the first candidate without asking")
	f.StringVar(&rf.hookPath, "hook", "", "write the first candidate into the given commit message file")

	cmd.AddCommand(newRulesCommand(app, &rf))
	cmd.AddCommand(newPingCommand(app, &rf))
	return cmd
}

func (app *App) runSuggest(cmd *cobra.Command, rf rootFlags) error {
	opts, err := config.Load(cmd.Flags(), rf.configFile)
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(app.Stderr, opts.Verbose)
	if opts.ConfigFile != "" {
		log.Debug().Str("path", opts.ConfigFile).Msg("config loaded")
	}

	mode := commit.SingleLine
	if opts.Body {
		mode = commit.SubjectBody
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc := usecase.NewService(app.Repo, rules.NewFileStore(opts.RulesFile), app.Backend(opts), log)
	res, err := svc.Execute(ctx, usecase.Options{
		Model:       opts.Model,
		ReviewModel: opts.ReviewModel,
		MaxBytes:    opts.MaxBytes,
		Review:      opts.Review,
		Mode:        mode,
	})
	if err != nil {
		return describe(err, opts)
	}

	if opts.Review {
		if res.ReviewErr != nil {
			fmt.Fprintf(app.Stderr, "⚠️ review failed: %v\n", res.ReviewErr)
		} else if res.Review != "" {
			fmt.Fprintln(app.Stdout, "Review findings:")
			fmt.Fprintln(app.Stdout, res.Review)
			fmt.Fprintln(app.Stdout)
		}
	}

	switch {
	case rf.hookPath != "":
		if err := app.Repo.WriteHook(rf.hookPath, res.Candidates[0]); err != nil {
			return fmt.Errorf("failed to write hook message file: %w", err)
		}
		fmt.Fprintln(app.Stdout, res.Candidates[0])
		return nil
	case rf.print:
		printCandidates(app.Stdout, res.Candidates)
		return nil
	case rf.yes:
		return app.commit(ctx, res.Candidates[0])
	}

	choice, err := app.Pick(res.Candidates)
	if err != nil {
		return err
	}
	switch choice.Action {
	case picker.Commit:
		return app.commit(ctx, choice.Message)
	case picker.Copy:
		if err := app.Clipboard.Copy(choice.Message); err != nil {
			return err
		}
		fmt.Fprintln(app.Stdout, "Copied to clipboard:")
		fmt.Fprintln(app.Stdout, choice.Message)
		return nil
	default:
		fmt.Fprintln(app.Stdout, "Aborted.")
		return nil
	}
}

func newPingCommand(app *App, rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the Ollama server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.Load(cmd.Flags(), rf.configFile)
			if err != nil {
				return err
			}
			if err := app.Ping(cmd.Context(), opts); err != nil {
				return describe(fmt.Errorf("%w: %w", generator.ErrServerUnreachable, err), opts)
			}
			fmt.Fprintf(app.Stdout, "Ollama is reachable at %s\n", opts.Endpoint)
			return nil
		},
	}
	cmd.Flags().String("endpoint", "", "Ollama base URL")
	return cmd
}

func (app *App) commit(ctx context.Context, message string) error {
	if err := app.Repo.Commit(ctx, message); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	fmt.Fprintln(app.Stdout, message)
	return nil
}

func printCandidates(w io.Writer, candidates []string) {
	for i, c := range candidates {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if !strings.Contains(c, "\n") {
			fmt.Fprintf(w, "%d. %s\n", i+1, c)
			continue
		}
		fmt.Fprintf(w, "%d. %s\n", i+1, strings.ReplaceAll(c, "\n", "\n   "))
	}
}

// describe turns pipeline failures into short actionable messages.
func describe(err error, opts config.Options) error {
	switch {
	case errors.Is(err, usecase.ErrNoStagedChanges):
		return errors.New("no staged changes, stage them first with `git add ...`")
	case errors.Is(err, generator.ErrEmptyOutput):
		return errors.New("model returned an empty or invalid response, try a larger model or a smaller diff")
	case errors.Is(err, generator.ErrServerUnreachable):
		var se *ollama.StatusError
		if errors.As(err, &se) {
			return fmt.Errorf("ollama at %s rejected the request: %s", opts.Endpoint, se.Error())
		}
		return fmt.Errorf("ollama server unreachable at %s, is `ollama serve` running?", opts.Endpoint)
	}
	return err
}
