package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okian/pitwall/internal/adapters/progress"
)

func newUpdateCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "update <league-key>",
		Short: "Sync a league now and write its snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stderr := cmd.ErrOrStderr()
			reporter := progress.ReporterFunc(func(_ context.Context, text string) {
				fmt.Fprintln(stderr, text)
			})
			report, err := st.svc.Update(cmd.Context(), args[0], reporter)
			if err != nil {
				return err
			}
			st.out(cmd).Print(*report)
			return nil
		},
	}
}

func newStandingsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "standings <league-key>",
		Short: "Show the league table from the latest snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := st.svc.Standings(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			st.out(cmd).Print(rows)
			return nil
		},
	}
}

func newResultCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "result <league-key> <account-id>",
		Short: "Show one account's picks and totals from the latest snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("account id %q: %w", args[1], err)
			}
			res, err := st.svc.Result(cmd.Context(), args[0], accountID)
			if err != nil {
				return err
			}
			st.out(cmd).Print(res)
			return nil
		},
	}
}

func newTokenCmd(st *state) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Ensure a fresh session token is cached",
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds := st.cfg.Credentials()
			if creds.Empty() {
				return fmt.Errorf("login and password must be configured")
			}
			var err error
			if refresh {
				_, err = st.pipeline.Session.Refresh(cmd.Context(), creds)
			} else {
				_, err = st.pipeline.Session.Token(cmd.Context(), creds)
			}
			if err != nil {
				return err
			}
			entry, err := st.pipeline.Cache.Load(cmd.Context())
			if err != nil {
				return err
			}
			st.out(cmd).Print(TokenInfo{
				Backend:   st.cfg.TokenCache,
				Path:      st.cfg.TokenCachePath(),
				UpdatedAt: entry.Modified,
				ExpiresAt: entry.Modified.Add(st.pipeline.Session.TTL()),
			})
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Log in again even if the cached token is fresh")
	return cmd
}

func newLeaguesCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List configured leagues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st.out(cmd).Print(st.svc.Leagues())
			return nil
		},
	}
}
