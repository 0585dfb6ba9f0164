package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/go-commitsuggest/internal/config"
	"github.com/riskibarqy/go-commitsuggest/internal/rules"
)

func newRulesCommand(app *App, rf *rootFlags) *cobra.Command {
	store := func(cmd *cobra.Command) (*rules.FileStore, error) {
		opts, err := config.Load(cmd.Flags(), rf.configFile)
		if err != nil {
			return nil, err
		}
		return rules.NewFileStore(opts.RulesFile), nil
	}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage the project rules added to every prompt",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List rules in the order they are sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store(cmd)
			if err != nil {
				return err
			}
			list, err := s.List()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(app.Stdout, "No rules defined.")
				return nil
			}
			for i, r := range list {
				fmt.Fprintf(app.Stdout, "%d. %s\n", i+1, r)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <rule>",
		Short: "Append a rule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store(cmd)
			if err != nil {
				return err
			}
			rule := strings.Join(args, " ")
			if err := s.Add(rule); err != nil {
				return err
			}
			fmt.Fprintf(app.Stdout, "Added rule: %s\n", strings.TrimSpace(rule))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <number>",
		Short: "Remove the rule with the number shown by list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid rule number %q", args[0])
			}
			s, err := store(cmd)
			if err != nil {
				return err
			}
			removed, err := s.Remove(n - 1)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Stdout, "Removed rule: %s\n", removed)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store(cmd)
			if err != nil {
				return err
			}
			if err := s.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(app.Stdout, "Rules cleared.")
			return nil
		},
	})

	return cmd
}
