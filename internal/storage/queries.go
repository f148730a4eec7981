package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pable/go-team-stats/internal/model"
)

// Overview holds high-level counts for the stored snapshot.
type Overview struct {
	Matches       int
	Players       int
	Events        int
	Tournaments   int
	EarliestMatch string
	LatestMatch   string
}

// TournamentCount is a tournament name and how many matches it holds.
type TournamentCount struct {
	Name    string
	Matches int
}

// ReplaceDataset swaps the whole snapshot in one transaction, so re-importing a
// workbook is idempotent.
func (db *DB) ReplaceDataset(ds *model.Dataset) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"performance_events", "players", "matches"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := insertMatches(tx, ds.Matches); err != nil {
		return err
	}
	if err := insertPlayers(tx, ds.Players); err != nil {
		return err
	}
	if err := insertEvents(tx, ds.Events); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertMatches upserts matches in a transaction. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertMatches(matches []model.Match) error {
	return db.inTx(func(tx *sql.Tx) error { return insertMatches(tx, matches) })
}

// InsertPlayers upserts roster rows in a transaction.
func (db *DB) InsertPlayers(players []model.Player) error {
	return db.inTx(func(tx *sql.Tx) error { return insertPlayers(tx, players) })
}

// InsertEvents appends performance events in a transaction.
func (db *DB) InsertEvents(events []model.PerformanceEvent) error {
	return db.inTx(func(tx *sql.Tx) error { return insertEvents(tx, events) })
}

// DeleteTournament removes one tournament's matches and the events recorded in them.
// The roster is kept. It returns the number of matches removed.
func (db *DB) DeleteTournament(name string) (int, error) {
	var removed int
	err := db.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			DELETE FROM performance_events
			WHERE match_id IN (SELECT id FROM matches WHERE tournament = ?)`, name); err != nil {
			return fmt.Errorf("delete events: %w", err)
		}
		res, err := tx.Exec("DELETE FROM matches WHERE tournament = ?", name)
		if err != nil {
			return fmt.Errorf("delete matches: %w", err)
		}
		n, err := res.RowsAffected()
		removed = int(n)
		return err
	})
	return removed, err
}

func (db *DB) inTx(fn func(*sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func insertMatches(tx *sql.Tx, matches []model.Match) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO matches(id, match_date, opponent, venue, tournament, goals_for, goals_against)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range matches {
		_, err = stmt.Exec(m.ID, m.Date.Format(dateLayout), m.Opponent, m.Venue, m.Tournament, m.GoalsFor, m.GoalsAgainst)
		if err != nil {
			return fmt.Errorf("insert match %d: %w", m.ID, err)
		}
	}
	return nil
}

func insertPlayers(tx *sql.Tx, players []model.Player) error {
	stmt, err := tx.Prepare(`
		INSERT INTO players(name, position, active, matches_played, matches_eligible, end_date)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(name) DO UPDATE SET
			position = excluded.position,
			active = excluded.active,
			matches_played = excluded.matches_played,
			matches_eligible = excluded.matches_eligible,
			end_date = excluded.end_date`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		var endDate sql.NullString
		if p.EndDate != nil {
			endDate = sql.NullString{String: p.EndDate.Format(dateLayout), Valid: true}
		}
		_, err = stmt.Exec(p.Name, p.Position, boolInt(p.Active), p.MatchesPlayed, p.MatchesEligible, endDate)
		if err != nil {
			return fmt.Errorf("insert player %q: %w", p.Name, err)
		}
	}
	return nil
}

func insertEvents(tx *sql.Tx, events []model.PerformanceEvent) error {
	stmt, err := tx.Prepare(`
		INSERT INTO performance_events(match_id, player, goals, assists, yellow_cards, red_cards)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		_, err = stmt.Exec(e.MatchID, e.Player, e.Goals, e.Assists, e.YellowCards, e.RedCards)
		if err != nil {
			return fmt.Errorf("insert event for %q in match %d: %w", e.Player, e.MatchID, err)
		}
	}
	return nil
}

// LoadDataset reads the full snapshot. Rows come back in insertion order, which is
// the order ranking tie-breaks are defined against.
func (db *DB) LoadDataset() (*model.Dataset, error) {
	ds := &model.Dataset{}
	var err error
	if ds.Matches, err = db.loadMatches(); err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	if ds.Players, err = db.loadPlayers(); err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	if ds.Events, err = db.loadEvents(); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	return ds, nil
}

func (db *DB) loadMatches() ([]model.Match, error) {
	rows, err := db.conn.Query(`
		SELECT id, match_date, opponent, venue, tournament, goals_for, goals_against
		FROM matches ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		var m model.Match
		var date string
		if err := rows.Scan(&m.ID, &date, &m.Opponent, &m.Venue, &m.Tournament, &m.GoalsFor, &m.GoalsAgainst); err != nil {
			return nil, err
		}
		if m.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("match %d date %q: %w", m.ID, date, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (db *DB) loadPlayers() ([]model.Player, error) {
	rows, err := db.conn.Query(`
		SELECT name, position, active, matches_played, matches_eligible, end_date
		FROM players ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var p model.Player
		var activeInt int
		var endDate sql.NullString
		if err := rows.Scan(&p.Name, &p.Position, &activeInt, &p.MatchesPlayed, &p.MatchesEligible, &endDate); err != nil {
			return nil, err
		}
		p.Active = activeInt != 0
		if endDate.Valid && endDate.String != "" {
			t, err := time.Parse(dateLayout, endDate.String)
			if err != nil {
				return nil, fmt.Errorf("player %q end date %q: %w", p.Name, endDate.String, err)
			}
			p.EndDate = &t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (db *DB) loadEvents() ([]model.PerformanceEvent, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, player, goals, assists, yellow_cards, red_cards
		FROM performance_events ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PerformanceEvent
	for rows.Next() {
		var e model.PerformanceEvent
		if err := rows.Scan(&e.MatchID, &e.Player, &e.Goals, &e.Assists, &e.YellowCards, &e.RedCards); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListTournaments returns tournaments in first-stored order with their match counts.
func (db *DB) ListTournaments() ([]TournamentCount, error) {
	rows, err := db.conn.Query(`
		SELECT tournament, COUNT(1)
		FROM matches GROUP BY tournament ORDER BY MIN(id)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TournamentCount
	for rows.Next() {
		var t TournamentCount
		if err := rows.Scan(&t.Name, &t.Matches); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetOverview returns row counts and the stored date range.
func (db *DB) GetOverview() (Overview, error) {
	var ov Overview
	var earliest, latest sql.NullString
	err := db.conn.QueryRow(`
		SELECT COUNT(1), COUNT(DISTINCT tournament), MIN(match_date), MAX(match_date)
		FROM matches`).Scan(&ov.Matches, &ov.Tournaments, &earliest, &latest)
	if err != nil {
		return ov, err
	}
	ov.EarliestMatch, ov.LatestMatch = earliest.String, latest.String
	if err := db.conn.QueryRow("SELECT COUNT(1) FROM players").Scan(&ov.Players); err != nil {
		return ov, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(1) FROM performance_events").Scan(&ov.Events); err != nil {
		return ov, err
	}
	return ov, nil
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
