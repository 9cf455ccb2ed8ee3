// Package api exposes the leaderboard over HTTP as JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"example.com/leaderboard/internal/domain"
)

// Limits are the entrant truncation sizes per view.
type Limits struct {
	Runners  int // top-N chart view
	Combined int // combined table view
}

// DefaultLimits mirrors the domain defaults.
var DefaultLimits = Limits{Runners: domain.IndividualLimit, Combined: domain.CombinedLimit}

// SnapshotService is the part of domain.Service the handlers need.
type SnapshotService interface {
	Snapshot(ctx context.Context) *domain.Snapshot
	Refresh(ctx context.Context) (*domain.Snapshot, error)
}

// Handler coordinates HTTP requests with the leaderboard service.
type Handler struct {
	service SnapshotService
	limits  Limits
}

// NewHandler builds a Handler.
func NewHandler(service SnapshotService, limits Limits) *Handler {
	if limits.Runners <= 0 {
		limits.Runners = DefaultLimits.Runners
	}
	if limits.Combined <= 0 {
		limits.Combined = DefaultLimits.Combined
	}
	return &Handler{service: service, limits: limits}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/leaderboard", h.leaderboard)
	mux.HandleFunc("/v1/leaderboard/teams", h.teams)
	mux.HandleFunc("/v1/leaderboard/runners", h.runners)
	mux.HandleFunc("/v1/teams", h.teamList)
	mux.HandleFunc("/v1/teams/", h.teamRoutes)
	mux.HandleFunc("/v1/archive", h.archive)
	mux.HandleFunc("/v1/archive/periods/", h.period)
	mux.HandleFunc("/v1/archive/summary", h.summary)
	mux.HandleFunc("/v1/refresh", h.refresh)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	snap := h.service.Snapshot(r.Context())
	board, err := snap.Leaderboard(h.limits.Combined)
	if err != nil {
		writeDomainError(w, err, snap)
		return
	}

	resp := LeaderboardResponse{
		Stats:        toStatsView(board.Stats),
		DaysLeft:     snap.DaysLeft,
		Teams:        toTeamRows(board.Teams),
		Runners:      toRunnerRows(board.Runners),
		RejectedRows: snap.Rejected,
		Warning:      snap.Warning,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) teams(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	snap := h.service.Snapshot(r.Context())
	standings, err := snap.TeamStandings()
	if err != nil {
		writeDomainError(w, err, snap)
		return
	}
	writeJSON(w, http.StatusOK, TeamsResponse{Teams: toTeamRows(standings), Warning: snap.Warning})
}

func (h *Handler) runners(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	limit := h.limits.Combined
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "validation_failed", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	} else if r.URL.Query().Get("view") == "chart" {
		limit = h.limits.Runners
	}

	snap := h.service.Snapshot(r.Context())
	standings, err := snap.RunnerStandings(limit)
	if err != nil {
		writeDomainError(w, err, snap)
		return
	}
	writeJSON(w, http.StatusOK, RunnersResponse{Runners: toRunnerRows(standings), Warning: snap.Warning})
}

func (h *Handler) teamList(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	snap := h.service.Snapshot(r.Context())
	configured := snap.Rosters().ConfiguredOnly()
	if len(snap.Current) == 0 && len(configured) == 0 {
		writeDomainError(w, domain.ErrNoData, snap)
		return
	}
	writeJSON(w, http.StatusOK, TeamListResponse{Teams: snap.Teams(), RosteredOnly: configured})
}

// teamRoutes serves /v1/teams/{team}/contributions and /v1/teams/{team}/members.
func (h *Handler) teamRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/teams/")
	if team, ok := strings.CutSuffix(rest, "/contributions"); ok && strings.TrimSpace(team) != "" {
		h.contributions(w, r, team)
		return
	}
	if team, ok := strings.CutSuffix(rest, "/members"); ok && strings.TrimSpace(team) != "" {
		h.members(w, r, team)
		return
	}
	writeError(w, http.StatusNotFound, "not_found", "unknown route")
}

func (h *Handler) contributions(w http.ResponseWriter, r *http.Request, team string) {
	if !allowGet(w, r) {
		return
	}

	snap := h.service.Snapshot(r.Context())
	contribution, err := snap.Contributions(team)
	if err != nil {
		writeDomainError(w, err, snap)
		return
	}

	resp := ContributionResponse{Team: contribution.Team, Members: make([]MemberRow, 0, len(contribution.Members))}
	for _, m := range contribution.Members {
		resp.Members = append(resp.Members, MemberRow{Rank: m.Rank, Runner: m.Key, Distance: m.Distance})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) members(w http.ResponseWriter, r *http.Request, team string) {
	if !allowGet(w, r) {
		return
	}

	snap := h.service.Snapshot(r.Context())
	members, err := snap.Roster(team)
	if err != nil {
		writeDomainError(w, err, snap)
		return
	}
	writeJSON(w, http.StatusOK, MembersResponse{
		Team:    team,
		Active:  snap.Rosters().Observed.Has(team),
		Members: members,
	})
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	snap := h.service.Snapshot(r.Context())
	archive, err := snap.Archive()
	if err != nil {
		writeDomainError(w, err, snap)
		return
	}
	labels := archive.Labels()
	writeJSON(w, http.StatusOK, ArchiveResponse{
		TotalEntries:  archive.Entries,
		Periods:       labels,
		DefaultPeriod: labels[0],
		Warning:       snap.Warning,
	})
}

func (h *Handler) period(w http.ResponseWriter, r *http.Request) {
	label := strings.TrimPrefix(r.URL.Path, "/v1/archive/periods/")
	if strings.TrimSpace(label) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing period")
		return
	}
	if !allowGet(w, r) {
		return
	}

	snap := h.service.Snapshot(r.Context())
	board, err := snap.Period(label)
	if err != nil {
		writeDomainError(w, err, snap)
		return
	}

	teams := make([]TeamRow, 0, len(board.Teams))
	for _, st := range board.Teams {
		members, _ := board.Members.Members(st.Key)
		teams = append(teams, TeamRow{Position: st.Position, Team: st.Key, Members: members, Distance: st.Distance})
	}
	writeJSON(w, http.StatusOK, PeriodResponse{
		Period:     board.Period,
		Stats:      toStatsView(board.Stats),
		Teams:      teams,
		Runners:    toRunnerRows(board.Entrants),
		TopRunners: toRunnerRows(board.TopEntrants()),
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	snap := h.service.Snapshot(r.Context())
	archive, err := snap.Archive()
	if err != nil {
		writeDomainError(w, err, snap)
		return
	}

	rows := archive.Summary()
	resp := SummaryResponse{Periods: make([]SummaryRow, 0, len(rows))}
	for _, row := range rows {
		resp.Periods = append(resp.Periods, SummaryRow{
			Period:          row.Period,
			Teams:           row.Teams,
			Participants:    row.Runners,
			TotalRuns:       row.Runs,
			TotalDistance:   row.TotalDistance,
			AverageDistance: row.AverageDistance,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	snap, err := h.service.Refresh(r.Context())
	resp := RefreshResponse{
		Status:   "refreshed",
		Current:  len(snap.Current),
		Archived: len(snap.Archived),
		Rejected: snap.Rejected,
		Warning:  snap.Warning,
	}
	if err != nil {
		resp.NotifyError = err.Error()
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return false
	}
	return true
}

func writeDomainError(w http.ResponseWriter, err error, snap *domain.Snapshot) {
	switch {
	case errors.Is(err, domain.ErrNoData), errors.Is(err, domain.ErrNoPeriods):
		payload := map[string]string{
			"type":   "no_data",
			"detail": err.Error(),
		}
		if snap != nil && snap.Warning != "" {
			payload["warning"] = snap.Warning
		}
		writeJSON(w, http.StatusNotFound, payload)
	case errors.Is(err, domain.ErrTeamNotFound), errors.Is(err, domain.ErrPeriodNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
