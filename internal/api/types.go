package api

import "example.com/leaderboard/internal/domain"

// StatsView is the headline statistics block.
type StatsView struct {
	TotalDistance   float64 `json:"total_distance"`
	TotalRuns       int     `json:"total_runs"`
	AverageDistance float64 `json:"average_distance"`
	ActiveRunners   int     `json:"active_runners"`
	Teams           int     `json:"teams"`
}

// TeamRow is one team leaderboard row.
type TeamRow struct {
	Position string   `json:"position"`
	Team     string   `json:"team"`
	Members  []string `json:"members"`
	Distance float64  `json:"distance"`
}

// RunnerRow is one runner leaderboard row.
type RunnerRow struct {
	Position string  `json:"position"`
	Runner   string  `json:"runner"`
	Team     string  `json:"team,omitempty"`
	Distance float64 `json:"distance"`
}

// MemberRow is one runner in a team contribution breakdown.
type MemberRow struct {
	Rank     int     `json:"rank"`
	Runner   string  `json:"runner"`
	Distance float64 `json:"distance"`
}

// SummaryRow is one period in the cross-period roll-up.
type SummaryRow struct {
	Period          string  `json:"period"`
	Teams           int     `json:"teams"`
	Participants    int     `json:"participants"`
	TotalRuns       int     `json:"total_runs"`
	TotalDistance   float64 `json:"total_distance"`
	AverageDistance float64 `json:"average_distance"`
}

// LeaderboardResponse is every current view built from one snapshot.
type LeaderboardResponse struct {
	Stats        StatsView   `json:"stats"`
	DaysLeft     *int        `json:"days_left,omitempty"`
	Teams        []TeamRow   `json:"teams"`
	Runners      []RunnerRow `json:"runners"`
	RejectedRows int         `json:"rejected_rows"`
	Warning      string      `json:"warning,omitempty"`
}

// TeamsResponse packages the team leaderboard.
type TeamsResponse struct {
	Teams   []TeamRow `json:"teams"`
	Warning string    `json:"warning,omitempty"`
}

// RunnersResponse packages the runner leaderboard.
type RunnersResponse struct {
	Runners []RunnerRow `json:"runners"`
	Warning string      `json:"warning,omitempty"`
}

// TeamListResponse lists teams with current records and configured teams
// that have none yet.
type TeamListResponse struct {
	Teams        []string `json:"teams"`
	RosteredOnly []string `json:"rostered_only"`
}

// MembersResponse is a team's roster.
type MembersResponse struct {
	Team    string   `json:"team"`
	Active  bool     `json:"active"`
	Members []string `json:"members"`
}

// ContributionResponse is a team's per-runner breakdown.
type ContributionResponse struct {
	Team    string      `json:"team"`
	Members []MemberRow `json:"members"`
}

// ArchiveResponse describes the available archive periods.
type ArchiveResponse struct {
	TotalEntries  int      `json:"total_entries"`
	Periods       []string `json:"periods"`
	DefaultPeriod string   `json:"default_period"`
	Warning       string   `json:"warning,omitempty"`
}

// PeriodResponse is one archive period's results.
type PeriodResponse struct {
	Period     string      `json:"period"`
	Stats      StatsView   `json:"stats"`
	Teams      []TeamRow   `json:"teams"`
	Runners    []RunnerRow `json:"runners"`
	TopRunners []RunnerRow `json:"top_runners"`
}

// SummaryResponse is the cross-period roll-up.
type SummaryResponse struct {
	Periods []SummaryRow `json:"periods"`
}

// RefreshResponse reports the snapshot loaded by a manual refresh.
type RefreshResponse struct {
	Status      string `json:"status"`
	Current     int    `json:"current"`
	Archived    int    `json:"archived"`
	Rejected    int    `json:"rejected"`
	Warning     string `json:"warning,omitempty"`
	NotifyError string `json:"notify_error,omitempty"`
}

func toStatsView(s domain.Stats) StatsView {
	return StatsView{
		TotalDistance:   s.TotalDistance,
		TotalRuns:       s.Runs,
		AverageDistance: s.AverageDistance,
		ActiveRunners:   s.Runners,
		Teams:           s.Teams,
	}
}

func toTeamRows(standings []domain.TeamStanding) []TeamRow {
	rows := make([]TeamRow, 0, len(standings))
	for _, st := range standings {
		members := st.Members
		if members == nil {
			members = []string{}
		}
		rows = append(rows, TeamRow{
			Position: st.Position,
			Team:     st.Key,
			Members:  members,
			Distance: st.Distance,
		})
	}
	return rows
}

func toRunnerRows(standings []domain.Standing[domain.Entrant]) []RunnerRow {
	rows := make([]RunnerRow, 0, len(standings))
	for _, st := range standings {
		rows = append(rows, RunnerRow{
			Position: st.Position,
			Runner:   st.Key.Runner,
			Team:     st.Key.Team,
			Distance: st.Distance,
		})
	}
	return rows
}
