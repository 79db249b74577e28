package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verdictlab/verdict/hierarchy"
	"github.com/verdictlab/verdict/ruleio"
)

// probeError is the synthetic error explain runs through the classifier.
type probeError struct {
	kind *hierarchy.Kind
	msg  string
	wrap error
}

func (e *probeError) Error() string         { return e.msg }
func (e *probeError) Unwrap() error         { return e.wrap }
func (e *probeError) Kind() *hierarchy.Kind { return e.kind }

// sqlProbeError additionally carries a SQLSTATE code.
type sqlProbeError struct {
	probeError
	state string
}

func (e *sqlProbeError) SQLState() string { return e.state }

func newExplainCmd() *cobra.Command {
	var (
		defines  []string
		kindName string
		sqlState string
		message  string
		wrapMsg  string
	)
	cmd := &cobra.Command{
		Use:   "explain <ruleset-file>",
		Short: "Classify a synthetic error against a ruleset",
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

			var kind *hierarchy.Kind
			if kindName != "" {
				k, ok := reg.Resolve(kindName)
				if !ok {
					return fmt.Errorf("unknown kind %q", kindName)
				}
				kind = k
			}

			var probe error
			if sqlState != "" {
				probe = &sqlProbeError{
					probeError: probeError{kind: kind, msg: message},
					state:      sqlState,
				}
			} else {
				probe = &probeError{kind: kind, msg: message}
			}
			if wrapMsg != "" {
				probe = fmt.Errorf("%s: %w", wrapMsg, probe)
			}

			ex := c.Explain(probe)
			out := cmd.OutOrStdout()
			if !ex.Matched {
				fmt.Fprintln(out, "no rule matched: do not retry")
				return nil
			}
			fmt.Fprintf(out, "rule:   %s\n", ex.Rule)
			fmt.Fprintf(out, "action: %s\n", ex.Action)
			fmt.Fprintf(out, "depth:  %d\n", ex.Depth)
			fmt.Fprintf(out, "retry:  %t\n", ex.Retry())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&defines, "define", nil,
		"declare a kind as name[:parent]; repeatable, parents first")
	cmd.Flags().StringVar(&kindName, "kind", "", "kind of the synthetic error")
	cmd.Flags().StringVar(&sqlState, "sql-state", "", "SQLSTATE code carried by the synthetic error")
	cmd.Flags().StringVar(&message, "message", "", "message of the synthetic error")
	cmd.Flags().StringVar(&wrapMsg, "wrap", "", "wrap the synthetic error in a plain error with this message")
	return cmd
}
