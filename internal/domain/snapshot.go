package domain

import "time"

// Snapshot is one render cycle's view of the source. Every leaderboard shown
// together must be computed from the same Snapshot.
type Snapshot struct {
	FetchedAt time.Time
	Current   []ActivityRecord
	Archived  []ActivityRecord
	Rejected  int
	Warning   string
	DaysLeft  *int

	membership Membership
	static     StaticRosters
}

// TeamStanding is a ranked team with its roster.
type TeamStanding struct {
	Standing[string]
	Members []string
}

// Contribution is a team's per-runner breakdown.
type Contribution struct {
	Team    string
	Members []Standing[string]
}

// Leaderboard bundles the current views rendered side by side.
type Leaderboard struct {
	Stats   Stats
	Teams   []TeamStanding
	Runners []Standing[Entrant]
}

// Rosters returns the layered roster lookup for this snapshot.
func (s *Snapshot) Rosters() Rosters {
	return Rosters{Observed: s.membership, Static: s.static}
}

// Teams lists current teams in first-occurrence order.
func (s *Snapshot) Teams() []string {
	return s.membership.Teams()
}

// Roster returns a team's members from the observed records, falling back to
// the configured rosters. A team known to neither is ErrTeamNotFound.
func (s *Snapshot) Roster(team string) ([]string, error) {
	rosters := s.Rosters()
	if !rosters.Has(team) {
		return nil, ErrTeamNotFound
	}
	return rosters.Members(team), nil
}

// Stats summarises the current partition.
func (s *Snapshot) Stats() (Stats, error) {
	if len(s.Current) == 0 {
		return Stats{}, ErrNoData
	}
	return Summarize(s.Current), nil
}

// TeamStandings ranks every current team and attaches its roster.
func (s *Snapshot) TeamStandings() ([]TeamStanding, error) {
	if len(s.Current) == 0 {
		return nil, ErrNoData
	}
	rosters := s.Rosters()
	ranked := Rank(TotalsByTeam(s.Current), Unlimited)
	out := make([]TeamStanding, len(ranked))
	for i, st := range ranked {
		out[i] = TeamStanding{Standing: st, Members: rosters.Members(st.Key)}
	}
	return out, nil
}

// RunnerStandings ranks current entrants, truncated to limit when positive.
func (s *Snapshot) RunnerStandings(limit int) ([]Standing[Entrant], error) {
	if len(s.Current) == 0 {
		return nil, ErrNoData
	}
	return Rank(TotalsByEntrant(s.Current), limit), nil
}

// Leaderboard computes stats, team standings and the combined runner view
// from this snapshot.
func (s *Snapshot) Leaderboard(runnerLimit int) (Leaderboard, error) {
	stats, err := s.Stats()
	if err != nil {
		return Leaderboard{}, err
	}
	teams, err := s.TeamStandings()
	if err != nil {
		return Leaderboard{}, err
	}
	runners, err := s.RunnerStandings(runnerLimit)
	if err != nil {
		return Leaderboard{}, err
	}
	return Leaderboard{Stats: stats, Teams: teams, Runners: runners}, nil
}

// Contributions ranks a current team's runners by distance.
func (s *Snapshot) Contributions(team string) (Contribution, error) {
	if len(s.Current) == 0 {
		return Contribution{}, ErrNoData
	}
	if !s.membership.Has(team) {
		return Contribution{}, ErrTeamNotFound
	}
	records := make([]ActivityRecord, 0)
	for _, rec := range s.Current {
		if rec.Team == team {
			records = append(records, rec)
		}
	}
	return Contribution{Team: team, Members: Rank(TotalsByRunner(records), Unlimited)}, nil
}

// Archive builds the per-period archive view.
func (s *Snapshot) Archive() (Archive, error) {
	if len(s.Archived) == 0 {
		return Archive{}, ErrNoData
	}
	archive := BuildArchive(s.Archived)
	if len(archive.Boards) == 0 {
		return Archive{}, ErrNoPeriods
	}
	return archive, nil
}

// Period returns the board for one archive period.
func (s *Snapshot) Period(period string) (PeriodBoard, error) {
	archive, err := s.Archive()
	if err != nil {
		return PeriodBoard{}, err
	}
	board, ok := archive.Board(period)
	if !ok {
		return PeriodBoard{}, ErrPeriodNotFound
	}
	return board, nil
}
