package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/model"
	"github.com/pable/go-team-stats/internal/report"
)

const analyzeSystemPrompt = `You are a football team performance analyst. You are given structured season
data for one team, produced by a statistics tool, and a question from the coach.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and practical.
- A null value means the figure could not be computed; the matching note says why.

Glossary:
- W/D/L: wins, draws, losses. Win rate is wins over matches played, as a percent.
- Clean sheet: a match where the team conceded no goals.
- Longest win streak: most consecutive wins in date order.
- PJ: matches a player played. PT: matches the player was eligible for.
- Appearance rate: PJ over PT as a whole percent.
- Per-match rates for players are over PJ; for the team, over matches played.`

var (
	analyzeModel  string
	analyzeAPIKey string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "AI-powered grounded analysis of the season (requires ANTHROPIC_API_KEY)",
	Long: `Send the season's computed statistics for the selected tournament, together with
your question, to an Anthropic model and stream the answer. Only aggregates are
sent, never the raw database.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", cfg.Model, "Anthropic model to use (env TEAMSTATS_MODEL)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", cfg.APIKey, "Anthropic API key (env ANTHROPIC_API_KEY)")
}

// seasonContext is the JSON document handed to the model.
type seasonContext struct {
	Tournament  string                        `json:"tournament"`
	Tournaments []string                      `json:"tournaments_available"`
	Team        *teamContext                  `json:"team"`
	Rankings    map[string][]aggregator.Entry `json:"rankings"`
	Monthly     []monthContext                `json:"monthly"`
	Players     []playerContext               `json:"players"`
	Notes       []string                      `json:"notes,omitempty"`
}

type teamContext struct {
	Matches          int                    `json:"matches"`
	Wins             int                    `json:"wins"`
	Draws            int                    `json:"draws"`
	Losses           int                    `json:"losses"`
	WinRatePct       float64                `json:"win_rate_pct"`
	GoalsFor         int                    `json:"goals_for"`
	GoalsAgainst     int                    `json:"goals_against"`
	Assists          int                    `json:"assists"`
	GoalsPerMatch    float64                `json:"goals_per_match"`
	ConcededPerMatch float64                `json:"conceded_per_match"`
	CleanSheets      int                    `json:"clean_sheets"`
	LongestWinStreak int                    `json:"longest_win_streak"`
	TopScorer        *aggregator.Entry      `json:"top_scorer"`
	TopAssister      *aggregator.Entry      `json:"top_assister"`
	BestVenue        *aggregator.VenueCount `json:"best_venue"`
	WorstVenue       *aggregator.VenueCount `json:"worst_venue"`
}

type monthContext struct {
	Month   string `json:"month"`
	Goals   int    `json:"goals"`
	Matches int    `json:"matches"`
}

type playerContext struct {
	Name              string   `json:"name"`
	Position          string   `json:"position"`
	Active            bool     `json:"active"`
	Goals             int      `json:"goals"`
	Assists           int      `json:"assists"`
	YellowCards       int      `json:"yellow_cards"`
	RedCards          int      `json:"red_cards"`
	PJ                int      `json:"pj"`
	PT                int      `json:"pt"`
	AppearanceRatePct *float64 `json:"appearance_rate_pct"`
	GoalsPerMatch     *float64 `json:"goals_per_match"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	ds, v, err := loadView()
	if err != nil {
		return err
	}
	contextJSON, err := buildSeasonContext(ds, v, time.Now())
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return askAnalyst(cmd.Context(), cmd.OutOrStdout(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

// buildSeasonContext collects every aggregate for the view into one JSON document.
// Figures that cannot be computed are null, with a note saying why.
func buildSeasonContext(ds *model.Dataset, v *aggregator.View, now time.Time) (string, error) {
	sc := seasonContext{
		Tournament:  report.TournamentLabel(v.Tournament),
		Tournaments: ds.Tournaments(),
		Rankings:    make(map[string][]aggregator.Entry),
	}
	note := func(what string, err error) {
		sc.Notes = append(sc.Notes, fmt.Sprintf("%s: %v", what, err))
	}

	if t, err := aggregator.TeamSummary(v); err != nil {
		note("team", err)
	} else {
		sc.Team = &teamContext{
			Matches:          t.Matches,
			Wins:             t.Wins,
			Draws:            t.Draws,
			Losses:           t.Losses,
			WinRatePct:       t.WinRate,
			GoalsFor:         t.GoalsFor,
			GoalsAgainst:     t.GoalsAgainst,
			Assists:          t.Assists,
			GoalsPerMatch:    t.GoalsPerMatch,
			ConcededPerMatch: t.ConcededPerMatch,
			CleanSheets:      t.CleanSheets,
			LongestWinStreak: t.LongestWinStreak,
		}
		if t.TopScorerErr == nil {
			sc.Team.TopScorer = &t.TopScorer
		}
		if t.TopAssisterErr == nil {
			sc.Team.TopAssister = &t.TopAssister
		}
		if t.BestVenueErr == nil {
			sc.Team.BestVenue = &t.BestVenue
		}
		if t.WorstVenueErr == nil {
			sc.Team.WorstVenue = &t.WorstVenue
		}
	}

	for _, tbl := range aggregator.Rankings(v).Tables {
		if tbl.Err != nil {
			note(tbl.Measure.String()+" ranking", tbl.Err)
			continue
		}
		sc.Rankings[tbl.Measure.String()] = tbl.Entries
	}

	if buckets, err := aggregator.MonthlyTrend(v); err != nil {
		note("monthly trend", err)
	} else {
		for _, b := range buckets {
			sc.Monthly = append(sc.Monthly, monthContext{Month: b.Month.String(), Goals: b.Goals, Matches: b.Matches})
		}
	}

	for _, name := range ds.PlayerNames() {
		card, err := aggregator.PlayerSummary(ds, v, name, now)
		if err != nil {
			note("player "+name, err)
			continue
		}
		pc := playerContext{
			Name:        card.Name,
			Position:    card.Position,
			Active:      card.Active,
			Goals:       card.Goals,
			Assists:     card.Assists,
			YellowCards: card.YellowCards,
			RedCards:    card.RedCards,
			PJ:          card.MatchesPlayed,
			PT:          card.MatchesEligible,
		}
		if card.AppearanceErr == nil {
			pc.AppearanceRatePct = &card.AppearanceRate
		}
		if card.PerMatchErr == nil {
			pc.GoalsPerMatch = &card.GoalsPerMatch
		}
		sc.Players = append(sc.Players, pc)
	}

	b, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// askAnalyst streams the model's answer about the season to w.
func askAnalyst(ctx context.Context, w io.Writer, apiKey, modelID, seasonJSON, question string) error {
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: analyzeSystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(
				fmt.Sprintf("SEASON DATA:\n%s\n\nCOACH'S QUESTION: %s", seasonJSON, question))),
		},
	})
	defer stream.Close()

	cPrompt.Fprintf(w, "\n--- Analyst (%s) ---\n\n", modelID)
	truncated := false
	for stream.Next() {
		switch ev := stream.Current().AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if d, ok := ev.Delta.AsAny().(anthropic.TextDelta); ok {
				fmt.Fprint(w, d.Text)
			}
		case anthropic.MessageDeltaEvent:
			truncated = ev.Delta.StopReason == anthropic.StopReasonMaxTokens
		}
	}
	fmt.Fprintln(w)
	if truncated {
		cMuted.Fprintln(w, "(answer cut short; ask a narrower question)")
	}
	return analystError(stream.Err())
}

// analystError turns API failures into messages about what the user can change.
func analystError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("the analyst rejected the API key (HTTP %d), check ANTHROPIC_API_KEY", apiErr.StatusCode)
		case http.StatusNotFound:
			return fmt.Errorf("unknown model, check --model or TEAMSTATS_MODEL: %w", err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("the analyst is rate limited, try again shortly: %w", err)
		}
	}
	return fmt.Errorf("analyst request: %w", err)
}
