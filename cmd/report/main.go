// Command report prints the leaderboard views as text tables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"example.com/leaderboard/internal/config"
	"example.com/leaderboard/internal/domain"
	"example.com/leaderboard/internal/roster"
	"example.com/leaderboard/internal/source"
)

type serviceLoader func(ctx context.Context) (*domain.Service, func(), error)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(loadService).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadService(ctx context.Context) (*domain.Service, func(), error) {
	cfg := config.Load()

	reader, closeSource, err := source.FromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []domain.Option{}
	if !cfg.ChallengeEnd.IsZero() {
		opts = append(opts, domain.WithChallengeEnd(cfg.ChallengeEnd))
	}
	service := domain.NewService(source.NewCache(reader, 0), opts...)

	if cfg.RosterPath != "" {
		rosters, err := roster.Load(cfg.RosterPath)
		if err != nil {
			closeSource()
			return nil, nil, err
		}
		service.SetStaticRosters(rosters)
	}
	return service, closeSource, nil
}

func newRootCmd(load serviceLoader) *cobra.Command {
	root := &cobra.Command{
		Use:           "report",
		Short:         "Print running leaderboards from the configured activity source",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	snapshot := func(cmd *cobra.Command) (*domain.Snapshot, error) {
		service, closeFn, err := load(cmd.Context())
		if err != nil {
			return nil, err
		}
		defer closeFn()
		snap := service.Snapshot(cmd.Context())
		if snap.Warning != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", snap.Warning)
		}
		return snap, nil
	}

	var limit int
	current := &cobra.Command{
		Use:   "current",
		Short: "Statistics, team leaderboard and individual leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot(cmd)
			if err != nil {
				return err
			}
			return printCurrent(cmd.OutOrStdout(), snap, limit)
		},
	}
	current.Flags().IntVar(&limit, "limit", domain.CombinedLimit, "Individual rows to show (0 for all)")

	contributions := &cobra.Command{
		Use:   "contributions TEAM",
		Short: "Per-runner contributions for one team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot(cmd)
			if err != nil {
				return err
			}
			return printContributions(cmd.OutOrStdout(), snap, args[0])
		},
	}

	members := &cobra.Command{
		Use:   "members TEAM",
		Short: "Roster for one team, falling back to the configured rosters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot(cmd)
			if err != nil {
				return err
			}
			return printMembers(cmd.OutOrStdout(), snap, args[0])
		},
	}

	archive := &cobra.Command{
		Use:   "archive [PERIOD]",
		Short: "Results for one archive period, the most recent by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot(cmd)
			if err != nil {
				return err
			}
			period := ""
			if len(args) == 1 {
				period = args[0]
			}
			return printPeriod(cmd.OutOrStdout(), snap, period)
		},
	}

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Summary across all archive periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot(cmd)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), snap)
		},
	}

	root.AddCommand(current, contributions, members, archive, summary)
	return root
}
