package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-andiamo/splitter"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/model"
	"github.com/pable/go-team-stats/internal/report"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long: `Open a persistent session against the database. Type 'help' for available commands.
Quote names that contain spaces, e.g. player "Ana Maria" assists.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

type shellEntry struct{ cmd, desc string }

var shellCommands = []shellEntry{
	{"summary", "team summary"},
	{"rankings", "goals, assists and card rankings"},
	{"trend", "goals and matches per month"},
	{"list", "matches in date order"},
	{"player <name> [measure]", "player card and per-match trend (default goals)"},
	{"players", "roster names"},
	{"tournaments", "tournaments in the snapshot"},
	{"use <tournament|all>", "change the tournament filter"},
	{"reload", "re-read the database"},
	{"help", "show this message"},
	{"exit / quit", "close the session"},
}

// session is the REPL state: one loaded snapshot and the active filter.
type session struct {
	ds         *model.Dataset
	tournament string
	reload     func() (*model.Dataset, error)
	now        func() time.Time

	out, errOut io.Writer
	tokens      splitter.Splitter
}

// lineSplitter tokenises shell input. Double quotes (straight or curly) keep names
// with spaces together.
var lineSplitter = mustSplitter()

func mustSplitter() splitter.Splitter {
	sp, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		panic(fmt.Sprintf("shell splitter: %v", err))
	}
	return sp
}

func newSession(ds *model.Dataset, tournament string, reload func() (*model.Dataset, error), out, errOut io.Writer) *session {
	return &session{
		ds:         ds,
		tournament: tournament,
		reload:     reload,
		now:        time.Now,
		out:        out,
		errOut:     errOut,
		tokens:     lineSplitter,
	}
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ds, err := loadDataset(db)
	if err != nil {
		return err
	}
	s := newSession(ds, tournament, func() (*model.Dataset, error) { return loadDataset(db) }, os.Stdout, os.Stderr)

	cGreeting.Println("teamstats shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()
	s.run(os.Stdin, true)
	return nil
}

// run reads commands until EOF or exit. The prompt is only drawn for terminals.
func (s *session) run(in io.Reader, prompt bool) {
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			cPrompt.Fprint(s.out, "teamstats")
			cMuted.Fprintf(s.out, "[%s]> ", report.TournamentLabel(s.tournament))
		}
		if !scanner.Scan() {
			if prompt {
				fmt.Fprintln(s.out)
			}
			return
		}
		if !s.exec(scanner.Text()) {
			return
		}
	}
}

// exec runs one line and reports whether the session should continue.
func (s *session) exec(line string) bool {
	args, err := s.split(line)
	if err != nil {
		cError.Fprintf(s.errOut, "error: %v\n", err)
		return true
	}
	if len(args) == 0 {
		return true
	}
	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "exit", "quit":
		return false
	case "help":
		s.help()
	case "summary":
		s.summary()
	case "rankings":
		report.PrintRankings(s.out, aggregator.Rankings(s.view()))
	case "trend":
		s.trend()
	case "list":
		s.list()
	case "players":
		for _, n := range s.ds.PlayerNames() {
			fmt.Fprintf(s.out, "  %s\n", n)
		}
	case "tournaments":
		for _, t := range s.ds.Tournaments() {
			fmt.Fprintf(s.out, "  %s\n", t)
		}
	case "use":
		if len(args) != 1 {
			cError.Fprintln(s.errOut, "usage: use <tournament|all>")
			break
		}
		s.use(args[0])
	case "player":
		if len(args) == 0 || len(args) > 2 {
			cError.Fprintln(s.errOut, "usage: player <name> [goals|assists|yellow|red]")
			break
		}
		measure := "goals"
		if len(args) == 2 {
			measure = args[1]
		}
		s.player(args[0], measure)
	case "reload":
		ds, err := s.reload()
		if err != nil {
			cError.Fprintf(s.errOut, "error: %v\n", err)
			break
		}
		s.ds = ds
		cMuted.Fprintf(s.out, "loaded %d matches\n", len(ds.Matches))
	default:
		msg := fmt.Sprintf("unknown command %q", cmd)
		if alt := closestCommand(cmd); alt != "" {
			msg += fmt.Sprintf(", did you mean %q?", alt)
		}
		cWarn.Fprintf(s.errOut, "%s (type 'help')\n", msg)
	}
	return true
}

func (s *session) split(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	parts, err := s.tokens.Split(line)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range parts {
		if p = unquote(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func unquote(s string) string {
	for _, q := range [][2]string{{`"`, `"`}, {"“", "”"}} {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return s[len(q[0]) : len(s)-len(q[1])]
		}
	}
	return s
}

func (s *session) view() *aggregator.View {
	return aggregator.Select(s.ds, s.tournament)
}

func (s *session) help() {
	fmt.Fprintln(s.out)
	for _, r := range shellCommands {
		fmt.Fprint(s.out, "  ")
		cCmd.Fprintf(s.out, "%-28s", r.cmd)
		fmt.Fprintln(s.out, r.desc)
	}
	fmt.Fprintln(s.out)
}

func (s *session) summary() {
	team, err := aggregator.TeamSummary(s.view())
	if err != nil {
		s.placeholder(err)
		return
	}
	report.PrintTeamSummary(s.out, team)
}

func (s *session) trend() {
	buckets, err := aggregator.MonthlyTrend(s.view())
	if err != nil {
		s.placeholder(err)
		return
	}
	report.PrintMonthlyTrend(s.out, buckets)
}

func (s *session) list() {
	v := s.view()
	if v.Empty() {
		s.placeholder(model.ErrEmptyDataset)
		return
	}
	for _, m := range aggregator.Chronological(v.Matches) {
		fmt.Fprintf(s.out, "  %s  %-20s %d-%d  %s\n",
			m.Date.Format("2006-01-02"), m.Opponent, m.GoalsFor, m.GoalsAgainst, m.Outcome())
	}
}

func (s *session) use(t string) {
	if aggregator.IsAll(t) {
		s.tournament = aggregator.AllTournaments
		return
	}
	known := s.ds.Tournaments()
	for _, k := range known {
		if strings.EqualFold(k, t) {
			s.tournament = k
			return
		}
	}
	msg := fmt.Sprintf("unknown tournament %q", t)
	if ranks := fuzzy.RankFindFold(t, known); len(ranks) > 0 {
		sort.Sort(ranks)
		msg += fmt.Sprintf(", did you mean %q?", ranks[0].Target)
	}
	cWarn.Fprintln(s.errOut, msg)
}

func (s *session) player(name, measureArg string) {
	measure, err := parsePlayerMeasure(measureArg)
	if err != nil {
		cError.Fprintf(s.errOut, "error: %v\n", err)
		return
	}
	v := s.view()
	card, err := aggregator.PlayerSummary(s.ds, v, name, s.now())
	if err != nil {
		s.placeholder(err)
		return
	}
	report.PrintPlayerCard(s.out, card, v.Tournament)
	points, err := aggregator.PlayerTrend(v, card.Name, measure)
	if err != nil {
		s.placeholder(err)
		return
	}
	report.PrintPlayerTrend(s.out, card.Name, measure, points)
}

func (s *session) placeholder(err error) {
	cWarn.Fprintf(s.errOut, "(%s) %v\n", report.Placeholder(err), err)
}

func closestCommand(typed string) string {
	var names []string
	for _, e := range shellCommands {
		names = append(names, strings.Fields(e.cmd)[0])
	}
	ranks := fuzzy.RankFindFold(typed, names)
	if len(ranks) == 0 {
		for _, n := range names {
			if fuzzy.MatchFold(n, typed) {
				return n
			}
		}
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
