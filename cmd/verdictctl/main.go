// verdictctl inspects verdict ruleset files: lint validates a ruleset and
// prints the derived precedence order, explain runs a synthetic error
// through it.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/verdictlab/verdict/hierarchy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:           "verdictctl",
		Short:         "Inspect and validate verdict rulesets",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load()
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: time.RFC3339,
			})))
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.AddCommand(newLintCmd(), newExplainCmd())
	return cmd
}

// buildRegistry seeds a registry with kinds declared as "name" or
// "name:parent". Parents must be declared before their children.
func buildRegistry(defs []string) (*hierarchy.Registry, error) {
	reg := hierarchy.NewRegistry()
	for _, def := range defs {
		name, parentName := def, ""
		if idx := strings.Index(def, ":"); idx != -1 {
			name, parentName = def[:idx], def[idx+1:]
		}

		var parent *hierarchy.Kind
		if parentName != "" {
			p, ok := reg.Resolve(parentName)
			if !ok {
				return nil, fmt.Errorf("kind %q: unknown parent %q", name, parentName)
			}
			parent = p
		}
		if _, err := reg.Define(name, parent); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
