package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/logger"
	"github.com/pable/go-team-stats/internal/model"
)

// TeamResponse is the JSON form of aggregator.Team. Leaders and venues are null
// when they could not be computed, with the reason in the matching *_error field.
type TeamResponse struct {
	Tournament       string                 `json:"tournament"`
	Matches          int                    `json:"matches"`
	Wins             int                    `json:"wins"`
	Draws            int                    `json:"draws"`
	Losses           int                    `json:"losses"`
	CleanSheets      int                    `json:"clean_sheets"`
	LongestWinStreak int                    `json:"longest_win_streak"`
	GoalsFor         int                    `json:"goals_for"`
	GoalsAgainst     int                    `json:"goals_against"`
	Assists          int                    `json:"assists"`
	GoalsPerMatch    float64                `json:"goals_per_match"`
	AssistsPerMatch  float64                `json:"assists_per_match"`
	ConcededPerMatch float64                `json:"conceded_per_match"`
	WinRate          float64                `json:"win_rate"`
	TopScorer        *aggregator.Entry      `json:"top_scorer"`
	TopScorerError   string                 `json:"top_scorer_error,omitempty"`
	TopAssister      *aggregator.Entry      `json:"top_assister"`
	TopAssisterError string                 `json:"top_assister_error,omitempty"`
	BestVenue        *aggregator.VenueCount `json:"best_venue"`
	BestVenueError   string                 `json:"best_venue_error,omitempty"`
	WorstVenue       *aggregator.VenueCount `json:"worst_venue"`
	WorstVenueError  string                 `json:"worst_venue_error,omitempty"`
}

// RankingResponse is one ranking table.
type RankingResponse struct {
	Measure string             `json:"measure"`
	Entries []aggregator.Entry `json:"entries"`
	Error   string             `json:"error,omitempty"`
}

// PlayerResponse is the JSON form of aggregator.PlayerCard.
type PlayerResponse struct {
	Name            string   `json:"name"`
	Tournament      string   `json:"tournament"`
	Position        string   `json:"position"`
	Active          bool     `json:"active"`
	StatusDate      string   `json:"status_date"`
	Goals           int      `json:"goals"`
	Assists         int      `json:"assists"`
	YellowCards     int      `json:"yellow_cards"`
	RedCards        int      `json:"red_cards"`
	MatchesPlayed   int      `json:"matches_played"`
	MatchesEligible int      `json:"matches_eligible"`
	AppearanceRate  *float64 `json:"appearance_rate"`
	GoalsPerMatch   *float64 `json:"goals_per_match"`
	AssistsPerMatch *float64 `json:"assists_per_match"`
	RateErrors      []string `json:"rate_errors,omitempty"`
}

// MonthResponse is one bucket of the monthly trend.
type MonthResponse struct {
	Month   string `json:"month"`
	Goals   int    `json:"goals"`
	Matches int    `json:"matches"`
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Tournaments lists distinct tournaments in first-seen order.
func (h *Handler) Tournaments(c *gin.Context) {
	ds, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"tournaments": ds.Tournaments()})
}

// Summary returns the team summary for the selected tournament.
func (h *Handler) Summary(c *gin.Context) {
	ds, ok := h.load(c)
	if !ok {
		return
	}
	t, err := aggregator.TeamSummary(aggregator.Select(ds, h.tournament(c)))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := TeamResponse{
		Tournament:       t.Tournament,
		Matches:          t.Matches,
		Wins:             t.Wins,
		Draws:            t.Draws,
		Losses:           t.Losses,
		CleanSheets:      t.CleanSheets,
		LongestWinStreak: t.LongestWinStreak,
		GoalsFor:         t.GoalsFor,
		GoalsAgainst:     t.GoalsAgainst,
		Assists:          t.Assists,
		GoalsPerMatch:    t.GoalsPerMatch,
		AssistsPerMatch:  t.AssistsPerMatch,
		ConcededPerMatch: t.ConcededPerMatch,
		WinRate:          t.WinRate,
	}
	resp.TopScorer, resp.TopScorerError = entryOrError(t.TopScorer, t.TopScorerErr)
	resp.TopAssister, resp.TopAssisterError = entryOrError(t.TopAssister, t.TopAssisterErr)
	resp.BestVenue, resp.BestVenueError = venueOrError(t.BestVenue, t.BestVenueErr)
	resp.WorstVenue, resp.WorstVenueError = venueOrError(t.WorstVenue, t.WorstVenueErr)
	c.JSON(http.StatusOK, resp)
}

// Rankings returns the four player ranking tables.
func (h *Handler) Rankings(c *gin.Context) {
	ds, ok := h.load(c)
	if !ok {
		return
	}
	set := aggregator.Rankings(aggregator.Select(ds, h.tournament(c)))
	out := make([]RankingResponse, len(set.Tables))
	for i, t := range set.Tables {
		out[i] = RankingResponse{Measure: t.Measure.String(), Entries: t.Entries}
		if t.Err != nil {
			out[i].Error = t.Err.Error()
			out[i].Entries = []aggregator.Entry{}
		}
	}
	c.JSON(http.StatusOK, gin.H{"tournament": h.tournament(c), "rankings": out})
}

// Players lists roster names in stored order.
func (h *Handler) Players(c *gin.Context) {
	ds, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": ds.PlayerNames()})
}

// Player returns one player's card.
func (h *Handler) Player(c *gin.Context) {
	ds, ok := h.load(c)
	if !ok {
		return
	}
	v := aggregator.Select(ds, h.tournament(c))
	card, err := aggregator.PlayerSummary(ds, v, c.Param("name"), h.now())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := PlayerResponse{
		Name:            card.Name,
		Tournament:      v.Tournament,
		Position:        card.Position,
		Active:          card.Active,
		StatusDate:      card.StatusDate.Format(time.DateOnly),
		Goals:           card.Goals,
		Assists:         card.Assists,
		YellowCards:     card.YellowCards,
		RedCards:        card.RedCards,
		MatchesPlayed:   card.MatchesPlayed,
		MatchesEligible: card.MatchesEligible,
	}
	if card.AppearanceErr != nil {
		resp.RateErrors = append(resp.RateErrors, card.AppearanceErr.Error())
	} else {
		resp.AppearanceRate = &card.AppearanceRate
	}
	if card.PerMatchErr != nil {
		resp.RateErrors = append(resp.RateErrors, card.PerMatchErr.Error())
	} else {
		resp.GoalsPerMatch, resp.AssistsPerMatch = &card.GoalsPerMatch, &card.AssistsPerMatch
	}
	c.JSON(http.StatusOK, resp)
}

// PlayerTrend returns the per-match series for ?measure= (default goals).
func (h *Handler) PlayerTrend(c *gin.Context) {
	measure, err := model.ParseMeasure(c.DefaultQuery("measure", "goals"))
	if err != nil || measure == model.MatchCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "measure must be goals, assists, yellow or red"})
		return
	}
	ds, ok := h.load(c)
	if !ok {
		return
	}
	name, err := aggregator.ResolvePlayer(ds, c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	points, err := aggregator.PlayerTrend(aggregator.Select(ds, h.tournament(c)), name, measure)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": name, "measure": measure.String(), "points": points})
}

// MonthlyTrend returns goals scored and matches played per month.
func (h *Handler) MonthlyTrend(c *gin.Context) {
	ds, ok := h.load(c)
	if !ok {
		return
	}
	buckets, err := aggregator.MonthlyTrend(aggregator.Select(ds, h.tournament(c)))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]MonthResponse, len(buckets))
	for i, b := range buckets {
		out[i] = MonthResponse{Month: b.Month.String(), Goals: b.Goals, Matches: b.Matches}
	}
	c.JSON(http.StatusOK, gin.H{"months": out})
}

func (h *Handler) tournament(c *gin.Context) string {
	return c.DefaultQuery("tournament", h.defaultTournament)
}

func (h *Handler) load(c *gin.Context) (*model.Dataset, bool) {
	ds, err := h.source.LoadDataset()
	if err != nil {
		logger.Errorf("load dataset: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dataset"})
		return nil, false
	}
	// Orphan events are left out of every aggregate; anything else makes the
	// snapshot unusable.
	if err := ds.Validate(); err != nil && !errors.Is(err, model.ErrMissingReference) {
		logger.Errorf("invalid dataset: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored dataset is invalid, re-import the workbook"})
		return nil, false
	}
	return ds, true
}

// writeError maps engine errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	var ref *model.MissingReferenceError
	switch {
	case errors.As(err, &ref):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "suggestions": ref.Suggestions})
	case errors.Is(err, model.ErrEmptyDataset):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrDivisionByZero):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func entryOrError(e aggregator.Entry, err error) (*aggregator.Entry, string) {
	if err != nil {
		return nil, err.Error()
	}
	return &e, ""
}

func venueOrError(v aggregator.VenueCount, err error) (*aggregator.VenueCount, string) {
	if err != nil {
		return nil, err.Error()
	}
	return &v, ""
}
