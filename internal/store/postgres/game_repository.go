package postgres

import (
	"context"
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/derekprior/clubsched/internal/logging"
	"github.com/derekprior/clubsched/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const insertGameQuery = `INSERT INTO games (
    public_id, league_id, week, field, label, home_team, away_team, game_date, game_time
) VALUES (
    :public_id, :league_id, :week, :field, :label, :home_team, :away_team, :game_date, :game_time
)`

const listGamesQuery = `SELECT seq, public_id, league_id, week, field, label, home_team, away_team,
    game_date, game_time, created_at
FROM games
WHERE league_id = $1
ORDER BY week, seq`

type GameRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewGameRepository(db *sqlx.DB, logger *logging.Logger) *GameRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameRepository{db: db, logger: logger}
}

var _ store.Repository = (*GameRepository)(nil)

// Open connects to a postgres database using lib/pq.
func Open(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "connect to postgres")
	}
	return db, nil
}

func (r *GameRepository) ReplaceLeagueGames(ctx context.Context, leagueID string, games []store.Game) error {
	for _, g := range games {
		if err := g.Validate(); err != nil {
			return err
		}
		if g.LeagueID != leagueID {
			return crerr.Wrapf(store.ErrInvalidGame, "game %s belongs to league %q, not %q", g.ID, g.LeagueID, leagueID)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx replace league games")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM games WHERE league_id = $1`, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "delete games league=%s", leagueID)
	}
	if err := insertGames(ctx, tx, games); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit replace league games tx")
	}

	removed, _ := res.RowsAffected()
	r.logger.Info("replaced league games", "league", leagueID, "removed", removed, "inserted", len(games))
	return nil
}

func (r *GameRepository) CreateGames(ctx context.Context, games []store.Game) error {
	if len(games) == 0 {
		return nil
	}
	for _, g := range games {
		if err := g.Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx create games")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertGames(ctx, tx, games); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit create games tx")
	}

	r.logger.Debug("created games", "count", len(games))
	return nil
}

func (r *GameRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE league_id = $1`, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "delete games league=%s", leagueID)
	}
	removed, _ := res.RowsAffected()
	r.logger.Info("deleted league games", "league", leagueID, "removed", removed)
	return nil
}

func (r *GameRepository) ListByLeague(ctx context.Context, leagueID string) ([]store.Game, error) {
	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, listGamesQuery, leagueID); err != nil {
		return nil, crerr.Wrapf(err, "select games league=%s", leagueID)
	}

	out := make([]store.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toGame())
	}
	return out, nil
}

func insertGames(ctx context.Context, tx *sqlx.Tx, games []store.Game) error {
	for _, g := range games {
		if _, err := tx.NamedExecContext(ctx, insertGameQuery, toInsertModel(g)); err != nil {
			if isConstraintViolation(err) {
				return crerr.WithSecondaryError(
					crerr.Wrapf(store.ErrInvalidGame, "insert game id=%s week=%d", g.ID, g.Week), err)
			}
			return crerr.Wrapf(err, "insert game id=%s week=%d", g.ID, g.Week)
		}
	}
	return nil
}

// isConstraintViolation reports unique and check constraint failures, which
// mean the game data itself is bad rather than the connection.
func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code.Name() {
	case "unique_violation", "check_violation", "not_null_violation":
		return true
	}
	return false
}
