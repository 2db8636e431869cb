// Package cli implements pitwallctl, the operator command line. It runs the
// same pipeline as the server without the HTTP layer.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	service "github.com/okian/pitwall/internal/app"
	"github.com/okian/pitwall/internal/config"
	"github.com/okian/pitwall/pkg/logger"
)

// state is shared by every subcommand of one invocation.
type state struct {
	configPath string
	output     string
	verbose    bool

	cfg      *config.Config
	svc      *service.Service
	pipeline *service.Pipeline
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	st := &state{output: "text"}

	rootCmd := &cobra.Command{
		Use:   "pitwallctl",
		Short: "Operator CLI for the pitwall fantasy league sync",
		Long: `pitwallctl runs fantasy league syncs and reads the resulting snapshots
without going through the HTTP gateway.

Configuration is shared with the server: defaults, then the YAML file named by
--config or PITWALL_CONFIG, then PITWALL_* environment variables.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if st.pipeline != nil {
				return st.pipeline.Close()
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&st.configPath, "config", os.Getenv("PITWALL_CONFIG"), "YAML config file (env: PITWALL_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&st.output, "output", "o", st.output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "Debug logging on stderr")

	rootCmd.AddCommand(newUpdateCmd(st))
	rootCmd.AddCommand(newStandingsCmd(st))
	rootCmd.AddCommand(newResultCmd(st))
	rootCmd.AddCommand(newTokenCmd(st))
	rootCmd.AddCommand(newLeaguesCmd(st))

	return rootCmd
}

func (st *state) setup(cmd *cobra.Command) error {
	// Logs go to stderr so stdout stays parseable.
	if err := logger.InitWriter(cmd.ErrOrStderr()); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadFrom(ctx, st.configPath)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if st.verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		_ = logger.SetLevelString("info")
	}

	svc, p, err := service.NewFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	st.cfg, st.svc, st.pipeline = cfg, svc, p
	return nil
}

func (st *state) out(cmd *cobra.Command) *Output {
	return NewOutput(st.output, cmd.OutOrStdout())
}

// Execute runs the root command.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
