package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/views"
)

// GetMeta describes the loaded panel.
// @Summary Panel metadata
// @Description Returns the reference season, horizon, run id, the user's team and the league's teams.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /meta [get]
func (h *Handler) GetMeta(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func() (interface{}, error) {
		userTeam, _ := views.UserTeam(h.panel)
		return map[string]interface{}{
			"run_id":      h.panel.RunID(),
			"season":      h.panel.Season(),
			"horizon":     h.panel.Horizon(),
			"players":     len(h.panel.Players()),
			"rows":        h.panel.Len(),
			"user_team":   userTeam,
			"teams":       h.panel.Teams(),
			"run_summary": h.stats.Summary(),
		}, nil
	})
}

// ListPlayers returns one season of the panel.
// @Summary List player seasons
// @Description Returns every player's row for one season (default: reference season), optionally filtered by team and position.
// @Tags players
// @Produce json
// @Param season query int false "Season"
// @Param team query string false "Team abbreviation or id"
// @Param pos query string false "Position" Enums(C, W, D, G)
// @Success 200 {array} model.RankedSeason
// @Failure 400 {object} respond.ErrorResponse
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func() (interface{}, error) {
		season, err := intParam(r, "season")
		if err != nil {
			return nil, err
		}
		team, err := h.teamParam(r)
		if err != nil {
			return nil, err
		}
		pos, err := positionParam(r)
		if err != nil {
			return nil, err
		}
		s := h.panel.Season()
		if season != nil {
			s = *season
		}
		out := make([]model.RankedSeason, 0)
		for _, row := range h.panel.SeasonRows(s) {
			if team != nil && row.TeamID != *team {
				continue
			}
			if pos.Valid() && row.Position != pos {
				continue
			}
			out = append(out, row)
		}
		return out, nil
	})
}

// GetPlayer returns every horizon season of one player.
// @Summary Player history
// @Description Returns all horizon rows of one player ordered by season.
// @Tags players
// @Produce json
// @Param pid path int true "Player id"
// @Success 200 {array} model.RankedSeason
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{pid} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func() (interface{}, error) {
		pid, err := pidParam(r)
		if err != nil {
			return nil, err
		}
		return views.PlayerHistory(h.panel, pid)
	})
}

// GetSigning evaluates a flat-salary contract offer.
// @Summary Evaluate a signing
// @Description Prices a contract of `years` seasons at `salary` (millions) per season starting next season, against the player's projected cap value.
// @Tags players
// @Produce json
// @Param pid path int true "Player id"
// @Param years query int true "Contract length in seasons"
// @Param salary query number true "Salary per season, millions"
// @Success 200 {object} views.Signing
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{pid}/signing [get]
func (h *Handler) GetSigning(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func() (interface{}, error) {
		pid, err := pidParam(r)
		if err != nil {
			return nil, err
		}
		years, err := intParam(r, "years")
		if err != nil {
			return nil, err
		}
		salary, err := floatParam(r, "salary")
		if err != nil {
			return nil, err
		}
		if years == nil || salary == nil {
			return nil, &badRequest{code: "MISSING_PARAM", err: fmt.Errorf("years and salary query parameters are required")}
		}
		limits := views.SigningLimits{MaxYears: h.cfg.ContractYears, MaxSalary: h.cfg.SalaryCeiling}
		return views.EvaluateSigning(h.panel, pid, *years, *salary, limits)
	})
}

// GetDraftBoard returns the current draft class.
// @Summary Draft board
// @Description Returns unsigned players of the current draft class ordered by projected peak value.
// @Tags boards
// @Produce json
// @Success 200 {array} model.RankedSeason
// @Router /draft [get]
func (h *Handler) GetDraftBoard(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func() (interface{}, error) {
		return views.DraftBoard(h.panel), nil
	})
}

// GetProspects returns the prospect board.
// @Summary Prospect board
// @Description Returns reference-season prospects ordered by projected career value.
// @Tags boards
// @Produce json
// @Param team query string false "Team abbreviation or id"
// @Param pos query string false "Position" Enums(C, W, D, G)
// @Param draft_year query int false "Draft class"
// @Success 200 {array} model.RankedSeason
// @Failure 400 {object} respond.ErrorResponse
// @Router /prospects [get]
func (h *Handler) GetProspects(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func() (interface{}, error) {
		var f views.ProspectFilter
		var err error
		if f.TeamID, err = h.teamParam(r); err != nil {
			return nil, err
		}
		if f.Position, err = positionParam(r); err != nil {
			return nil, err
		}
		if f.DraftYear, err = intParam(r, "draft_year"); err != nil {
			return nil, err
		}
		return views.Prospects(h.panel, f), nil
	})
}

// GetTeamValues returns team contract value totals.
// @Summary Team value summary
// @Description Returns per-team totals of value and contract value for the reference season.
// @Tags teams
// @Produce json
// @Success 200 {array} views.TeamValue
// @Router /teams/value [get]
func (h *Handler) GetTeamValues(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func() (interface{}, error) {
		return views.TeamValues(h.panel), nil
	})
}

// GetTeamProspects returns prospect depth per team.
// @Summary Team prospect depth
// @Description Returns per-team counts of top-10/50/100 prospects.
// @Tags teams
// @Produce json
// @Success 200 {array} views.TeamProspects
// @Router /teams/prospects [get]
func (h *Handler) GetTeamProspects(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func() (interface{}, error) {
		return views.TeamProspectDepth(h.panel), nil
	})
}

// GetMarket returns next season's contract market.
// @Summary Contract market
// @Description Returns next season's rows ordered by total contract value.
// @Tags boards
// @Produce json
// @Param filter query string false "Market slice" Enums(all, upcoming-fa, dead-weight)
// @Param team query string false "Team abbreviation or id"
// @Param pos query string false "Position" Enums(C, W, D, G)
// @Success 200 {array} model.RankedSeason
// @Failure 400 {object} respond.ErrorResponse
// @Router /market [get]
func (h *Handler) GetMarket(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func() (interface{}, error) {
		var q views.MarketQuery
		var err error
		if q.Filter, err = views.ParseMarketFilter(r.URL.Query().Get("filter")); err != nil {
			return nil, &badRequest{code: "INVALID_FILTER", err: err}
		}
		if q.TeamID, err = h.teamParam(r); err != nil {
			return nil, err
		}
		if q.Position, err = positionParam(r); err != nil {
			return nil, err
		}
		return views.Market(h.panel, q), nil
	})
}

// --------------------------------------------------------------------------
// Query parsing
// --------------------------------------------------------------------------

func pidParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "pid")
	pid, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &badRequest{code: "INVALID_PID", err: fmt.Errorf("player id must be an integer, got %q", raw)}
	}
	return pid, nil
}

func intParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &badRequest{code: "INVALID_PARAM", err: fmt.Errorf("%s must be an integer, got %q", name, raw)}
	}
	return &n, nil
}

func floatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &badRequest{code: "INVALID_PARAM", err: fmt.Errorf("%s must be a number, got %q", name, raw)}
	}
	return &f, nil
}

func positionParam(r *http.Request) (model.Position, error) {
	raw := r.URL.Query().Get("pos")
	if raw == "" {
		return model.PositionUnknown, nil
	}
	pos, err := model.ParsePosition(strings.ToUpper(raw))
	if err != nil {
		return model.PositionUnknown, &badRequest{code: "INVALID_POSITION", err: err}
	}
	return pos, nil
}

// teamParam accepts a team abbreviation (any case) or a numeric team id.
func (h *Handler) teamParam(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("team")
	if raw == "" {
		return nil, nil
	}
	for _, t := range h.panel.Teams() {
		if strings.EqualFold(t.Abbrev, raw) || strconv.Itoa(t.ID) == raw {
			id := t.ID
			return &id, nil
		}
	}
	return nil, &badRequest{code: "UNKNOWN_TEAM", err: fmt.Errorf("unknown team %q", raw)}
}
