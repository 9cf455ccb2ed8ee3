package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"example.com/leaderboard/internal/domain"
)

// printEmpty turns an empty-result condition into a message instead of an
// error so the command still exits cleanly.
func printEmpty(w io.Writer, err error, what string) error {
	if errors.Is(err, domain.ErrNoData) || errors.Is(err, domain.ErrNoPeriods) {
		fmt.Fprintf(w, "No %s available.\n", what)
		return nil
	}
	return err
}

func printCurrent(w io.Writer, snap *domain.Snapshot, limit int) error {
	board, err := snap.Leaderboard(limit)
	if err != nil {
		return printEmpty(w, err, "data")
	}

	if snap.DaysLeft != nil {
		fmt.Fprintf(w, "%d days left\n\n", *snap.DaysLeft)
	}
	fmt.Fprintf(w, "Total distance: %.1f km\n", board.Stats.TotalDistance)
	fmt.Fprintf(w, "Total runs: %d\n", board.Stats.Runs)
	fmt.Fprintf(w, "Average distance: %.1f km\n", board.Stats.AverageDistance)
	fmt.Fprintf(w, "Active runners: %d\n\n", board.Stats.Runners)

	fmt.Fprintln(w, "Team Leaderboard")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Pos\tTeam\tMembers\tDistance (km)")
	for _, t := range board.Teams {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", t.Position, t.Key, strings.Join(t.Members, ", "), t.Distance)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nIndividual Leaderboard")
	return printEntrants(w, board.Runners)
}

func printEntrants(w io.Writer, standings []domain.Standing[domain.Entrant]) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Pos\tRunner\tTeam\tDistance (km)")
	for _, s := range standings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", s.Position, s.Key.Runner, s.Key.Team, s.Distance)
	}
	return tw.Flush()
}

func printContributions(w io.Writer, snap *domain.Snapshot, team string) error {
	contribution, err := snap.Contributions(team)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			fmt.Fprintf(w, "No data found for %s\n", team)
			return nil
		}
		return printEmpty(w, err, "data")
	}

	fmt.Fprintf(w, "%s Member Contributions\n", contribution.Team)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tRunner\tDistance (km)")
	for _, m := range contribution.Members {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\n", m.Rank, m.Key, m.Distance)
	}
	return tw.Flush()
}

func printMembers(w io.Writer, snap *domain.Snapshot, team string) error {
	members, err := snap.Roster(team)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			fmt.Fprintf(w, "No roster found for %s\n", team)
			return nil
		}
		return err
	}

	fmt.Fprintf(w, "%s Members\n", team)
	if len(members) == 0 {
		fmt.Fprintln(w, "(no members)")
	}
	for _, m := range members {
		fmt.Fprintf(w, "- %s\n", m)
	}
	return nil
}

func printPeriod(w io.Writer, snap *domain.Snapshot, period string) error {
	archive, err := snap.Archive()
	if err != nil {
		return printEmpty(w, err, "archived data")
	}
	if period == "" {
		period = archive.Labels()[0]
	}
	board, ok := archive.Board(period)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPeriodNotFound, period)
	}

	fmt.Fprintf(w, "Found %d archived entries across %d periods\n\n", archive.Entries, len(archive.Boards))
	fmt.Fprintf(w, "Team Results - %s\n", board.Period)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tTeam\tDistance (km)")
	for _, t := range board.Teams {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\n", t.Position, t.Key, t.Distance)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nIndividual Results - %s\n", board.Period)
	if err := printEntrants(w, board.Entrants); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nPeriod Statistics - %s\n", board.Period)
	fmt.Fprintf(w, "Total distance: %.1f km\n", board.Stats.TotalDistance)
	fmt.Fprintf(w, "Total runs: %d\n", board.Stats.Runs)
	fmt.Fprintf(w, "Average distance: %.1f km\n", board.Stats.AverageDistance)
	fmt.Fprintf(w, "Active runners: %d\n", board.Stats.Runners)
	return nil
}

func printSummary(w io.Writer, snap *domain.Snapshot) error {
	archive, err := snap.Archive()
	if err != nil {
		return printEmpty(w, err, "archived data")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Period\tTeams\tParticipants\tTotal Runs\tTotal Distance (km)\tAverage Distance (km)")
	for _, row := range archive.Summary() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f\t%.1f\n",
			row.Period, row.Teams, row.Runners, row.Runs, row.TotalDistance, row.AverageDistance)
	}
	return tw.Flush()
}
