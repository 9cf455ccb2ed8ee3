package domain

import "slices"

// Membership is the team roster derived from observed records. Teams and
// runners within a team are listed in first-occurrence order.
type Membership struct {
	teams   []string
	rosters map[string][]string
}

// BuildMembership folds records into team rosters, suppressing repeated
// runners within a team.
func BuildMembership(records []ActivityRecord) Membership {
	m := Membership{rosters: make(map[string][]string)}
	seen := make(map[Entrant]struct{})
	for _, rec := range records {
		if _, ok := m.rosters[rec.Team]; !ok {
			m.teams = append(m.teams, rec.Team)
			m.rosters[rec.Team] = nil
		}
		key := Entrant{Runner: rec.Runner, Team: rec.Team}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		m.rosters[rec.Team] = append(m.rosters[rec.Team], rec.Runner)
	}
	return m
}

// Teams lists teams in first-occurrence order.
func (m Membership) Teams() []string {
	return append([]string{}, m.teams...)
}

// Members returns the observed roster for team.
func (m Membership) Members(team string) ([]string, bool) {
	members, ok := m.rosters[team]
	if !ok {
		return nil, false
	}
	return append([]string(nil), members...), true
}

// Has reports whether team was observed.
func (m Membership) Has(team string) bool {
	_, ok := m.rosters[team]
	return ok
}

// StaticRosters is a configured team to runner mapping.
type StaticRosters map[string][]string

// Rosters resolves a team's members: the observed roster when the team has
// any records, otherwise the configured one.
type Rosters struct {
	Observed Membership
	Static   StaticRosters
}

// Members returns the roster for team, or an empty list when neither layer
// knows it.
func (r Rosters) Members(team string) []string {
	if members, ok := r.Observed.Members(team); ok {
		return members
	}
	if members, ok := r.Static[team]; ok {
		return append([]string{}, members...)
	}
	return []string{}
}

// Has reports whether team is known to either layer.
func (r Rosters) Has(team string) bool {
	if r.Observed.Has(team) {
		return true
	}
	_, ok := r.Static[team]
	return ok
}

// ConfiguredOnly lists the static teams with no observed records, sorted.
func (r Rosters) ConfiguredOnly() []string {
	out := make([]string, 0)
	for team := range r.Static {
		if !r.Observed.Has(team) {
			out = append(out, team)
		}
	}
	slices.Sort(out)
	return out
}
