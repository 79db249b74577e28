package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/verdictlab/verdict/ruleio"
)

func newLintCmd() *cobra.Command {
	var defines []string
	cmd := &cobra.Command{
		Use:   "lint <ruleset-file>",
		Short: "Validate a ruleset and print its precedence order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := buildRegistry(defines)
			if err != nil {
				return err
			}

			c, err := ruleio.Build(cmd.Context(), reg, ruleio.File{Path: args[0]})
			if err != nil {
				return err
			}

			rules := c.Rules()
			slog.Info("ruleset is valid", "file", args[0], "rules", len(rules))
			for i, r := range rules {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, r)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&defines, "define", nil,
		"declare a kind as name[:parent]; repeatable, parents first")
	return cmd
}
