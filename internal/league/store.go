package league

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// UpsertPlayers inserts or updates players and their box memberships.
func (s *store) UpsertPlayers(players []PlayerRecord) error {
	if len(players) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	playerStmt, err := tx.Prepare(`
		INSERT INTO players (id, first_name, last_name)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer playerStmt.Close()

	membershipStmt, err := tx.Prepare(`
		INSERT INTO memberships (player_id, box_id, box_name, season_id, next_box_status)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			box_id = excluded.box_id,
			box_name = excluded.box_name,
			season_id = excluded.season_id,
			next_box_status = excluded.next_box_status;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer membershipStmt.Close()

	for _, p := range players {
		if _, err := playerStmt.Exec(p.ID, p.FirstName, p.LastName); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
		if p.Membership == nil {
			if _, err := tx.Exec("DELETE FROM memberships WHERE player_id = ?", p.ID); err != nil {
				tx.Rollback()
				return err
			}
			continue
		}
		m := p.Membership
		if _, err := membershipStmt.Exec(p.ID, m.BoxID, m.BoxName, m.SeasonID, string(m.NextBoxStatus)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert membership for player %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// UpsertSeasons inserts or updates season records.
func (s *store) UpsertSeasons(seasons []SeasonRecord) error {
	if len(seasons) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO seasons (id, start_date, end_date, status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, season := range seasons {
		if _, err := stmt.Exec(season.ID, season.StartDate, season.EndDate, string(season.Status)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert season %s: %w", season.ID, err)
		}
	}

	return tx.Commit()
}

// UpsertMatch inserts a new match or updates an existing one, including its
// delay negotiation columns. It is a "dumb" upsert: the record is taken as-is.
func (s *store) UpsertMatch(match *MatchRecord) error {
	return s.UpsertMatches([]*MatchRecord{match})
}

// UpsertMatches upserts a batch of matches in one transaction.
func (s *store) UpsertMatches(matches []*MatchRecord) error {
	if len(matches) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO matches (id, box_id, season_id, player_a_id, player_b_id, score_a, score_b, scheduled_at, played_at, no_show_player_id, retired_player_id, delayed_player_id, delayed_requested_by, delayed_status, delayed_requested_at, delayed_resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			box_id = excluded.box_id,
			season_id = excluded.season_id,
			player_a_id = excluded.player_a_id,
			player_b_id = excluded.player_b_id,
			score_a = excluded.score_a,
			score_b = excluded.score_b,
			scheduled_at = excluded.scheduled_at,
			played_at = excluded.played_at,
			no_show_player_id = excluded.no_show_player_id,
			retired_player_id = excluded.retired_player_id,
			delayed_player_id = excluded.delayed_player_id,
			delayed_requested_by = excluded.delayed_requested_by,
			delayed_status = excluded.delayed_status,
			delayed_requested_at = excluded.delayed_requested_at,
			delayed_resolved_at = excluded.delayed_resolved_at;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, m := range matches {
		_, err = stmt.Exec(
			m.ID, m.BoxID, m.SeasonID, m.PlayerAID, m.PlayerBID,
			intPtrToNull(m.ScoreA), intPtrToNull(m.ScoreB),
			int64PtrToNull(m.ScheduledAt), int64PtrToNull(m.PlayedAt),
			strPtrToNull(m.NoShowPlayerID), strPtrToNull(m.RetiredPlayerID), strPtrToNull(m.DelayedPlayerID),
			strPtrToNull(m.DelayedRequestedBy), delayStatusToNull(m.DelayedStatus),
			int64PtrToNull(m.DelayedRequestedAt), int64PtrToNull(m.DelayedResolvedAt),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert match %s: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

// UpdateDelayNegotiation persists only the delay negotiation columns of a match.
// The legality of the transition is decided by the delay state machine before
// this is called; the store applies the new state verbatim.
func (s *store) UpdateDelayNegotiation(match *MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE matches SET
			delayed_requested_by = ?,
			delayed_status = ?,
			delayed_requested_at = ?,
			delayed_resolved_at = ?
		WHERE id = ?
	`,
		strPtrToNull(match.DelayedRequestedBy), delayStatusToNull(match.DelayedStatus),
		int64PtrToNull(match.DelayedRequestedAt), int64PtrToNull(match.DelayedResolvedAt),
		match.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("match %s not found", match.ID)
	}
	return nil
}

// GetPlayers retrieves all players, optionally scoped to one box.
func (s *store) GetPlayers(boxID string) ([]PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT p.id, p.first_name, p.last_name, m.box_id, m.box_name, m.season_id, m.next_box_status
		FROM players p
		LEFT JOIN memberships m ON p.id = m.player_id
	`
	args := []any{}
	if boxID != "" {
		query += " WHERE m.box_id = ?"
		args = append(args, boxID)
	}
	query += " ORDER BY p.last_name, p.first_name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err, "boxID", boxID)
		return nil, err
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// GetPlayer retrieves a single player by id.
func (s *store) GetPlayer(playerID string) (*PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT p.id, p.first_name, p.last_name, m.box_id, m.box_name, m.season_id, m.next_box_status
		FROM players p
		LEFT JOIN memberships m ON p.id = m.player_id
		WHERE p.id = ?
	`, playerID)

	p, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player %s not found", playerID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return p, nil
}

// GetSeasons retrieves all seasons, most recent first.
func (s *store) GetSeasons() ([]SeasonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, start_date, end_date, status FROM seasons ORDER BY start_date DESC")
	if err != nil {
		log.Error("Failed to query seasons", "error", err)
		return nil, err
	}
	defer rows.Close()

	var seasons []SeasonRecord
	for rows.Next() {
		var season SeasonRecord
		var status string
		if err := rows.Scan(&season.ID, &season.StartDate, &season.EndDate, &status); err != nil {
			log.Error("Failed to scan season row", "error", err)
			continue
		}
		season.Status = SeasonStatus(status)
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

// GetMatch retrieves a single match by id.
func (s *store) GetMatch(matchID string) (*MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectMatchColumns+" FROM matches WHERE id = ?", matchID)
	match, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("match %s not found", matchID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return match, nil
}

// GetMatches retrieves matches filtered by the query, oldest first.
func (s *store) GetMatches(q MatchQuery) ([]*MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectMatchColumns + " FROM matches"
	var conditions []string
	var args []any
	if q.SeasonID != "" {
		conditions = append(conditions, "season_id = ?")
		args = append(args, q.SeasonID)
	}
	if q.BoxID != "" {
		conditions = append(conditions, "box_id = ?")
		args = append(args, q.BoxID)
	}
	if q.PlayerID != "" {
		conditions = append(conditions, "(player_a_id = ? OR player_b_id = ?)")
		args = append(args, q.PlayerID, q.PlayerID)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY COALESCE(played_at, scheduled_at, 0), id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	var matches []*MatchRecord
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"matches", "memberships", "seasons", "players", "metrics"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

const selectMatchColumns = `SELECT id, box_id, season_id, player_a_id, player_b_id, score_a, score_b, scheduled_at, played_at, no_show_player_id, retired_player_id, delayed_player_id, delayed_requested_by, delayed_status, delayed_requested_at, delayed_resolved_at`

// scanMatch is a helper to scan a single match row into a MatchRecord.
func scanMatch(scanner interface{ Scan(...any) error }) (*MatchRecord, error) {
	var match MatchRecord
	var scoreA, scoreB sql.NullInt64
	var scheduledAt, playedAt, requestedAt, resolvedAt sql.NullInt64
	var noShow, retired, delayed, requestedBy, delayStatus sql.NullString

	err := scanner.Scan(
		&match.ID, &match.BoxID, &match.SeasonID, &match.PlayerAID, &match.PlayerBID,
		&scoreA, &scoreB, &scheduledAt, &playedAt,
		&noShow, &retired, &delayed,
		&requestedBy, &delayStatus, &requestedAt, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	match.ScoreA = nullToIntPtr(scoreA)
	match.ScoreB = nullToIntPtr(scoreB)
	match.ScheduledAt = nullToInt64Ptr(scheduledAt)
	match.PlayedAt = nullToInt64Ptr(playedAt)
	match.NoShowPlayerID = nullToStrPtr(noShow)
	match.RetiredPlayerID = nullToStrPtr(retired)
	match.DelayedPlayerID = nullToStrPtr(delayed)
	match.DelayedRequestedBy = nullToStrPtr(requestedBy)
	if delayStatus.Valid {
		match.DelayedStatus = DelayStatus(delayStatus.String)
	}
	match.DelayedRequestedAt = nullToInt64Ptr(requestedAt)
	match.DelayedResolvedAt = nullToInt64Ptr(resolvedAt)

	return &match, nil
}

// scanPlayer scans a player row with its optional membership columns.
func scanPlayer(scanner interface{ Scan(...any) error }) (*PlayerRecord, error) {
	var p PlayerRecord
	var boxID, boxName, seasonID, nextBox sql.NullString

	if err := scanner.Scan(&p.ID, &p.FirstName, &p.LastName, &boxID, &boxName, &seasonID, &nextBox); err != nil {
		return nil, err
	}
	if boxID.Valid {
		p.Membership = &BoxMembership{
			BoxID:         boxID.String,
			BoxName:       boxName.String,
			SeasonID:      seasonID.String,
			NextBoxStatus: NextBoxStatus(nextBox.String),
		}
	}
	return &p, nil
}

func intPtrToNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func int64PtrToNull(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func strPtrToNull(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func delayStatusToNull(v DelayStatus) sql.NullString {
	if v == DelayStatusNone {
		return sql.NullString{}
	}
	return sql.NullString{String: string(v), Valid: true}
}

func nullToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullToInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func nullToStrPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
