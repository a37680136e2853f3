package postgres

import (
	"time"

	"github.com/derekprior/clubsched/internal/store"
)

type gameTableModel struct {
	Seq       int64      `db:"seq"`
	PublicID  string     `db:"public_id"`
	LeagueID  string     `db:"league_id"`
	Week      int        `db:"week"`
	Field     int        `db:"field"`
	Label     string     `db:"label"`
	HomeTeam  string     `db:"home_team"`
	AwayTeam  string     `db:"away_team"`
	GameDate  *time.Time `db:"game_date"`
	GameTime  string     `db:"game_time"`
	CreatedAt time.Time  `db:"created_at"`
}

type gameInsertModel struct {
	PublicID string     `db:"public_id"`
	LeagueID string     `db:"league_id"`
	Week     int        `db:"week"`
	Field    int        `db:"field"`
	Label    string     `db:"label"`
	HomeTeam string     `db:"home_team"`
	AwayTeam string     `db:"away_team"`
	GameDate *time.Time `db:"game_date"`
	GameTime string     `db:"game_time"`
}

func toInsertModel(g store.Game) gameInsertModel {
	m := gameInsertModel{
		PublicID: g.ID,
		LeagueID: g.LeagueID,
		Week:     g.Week,
		Field:    g.Field,
		Label:    g.Label,
		HomeTeam: g.Home,
		AwayTeam: g.Away,
		GameTime: g.Time,
	}
	if !g.Date.IsZero() {
		d := g.Date
		m.GameDate = &d
	}
	return m
}

func (m gameTableModel) toGame() store.Game {
	g := store.Game{
		ID:       m.PublicID,
		LeagueID: m.LeagueID,
		Week:     m.Week,
		Field:    m.Field,
		Label:    m.Label,
		Home:     m.HomeTeam,
		Away:     m.AwayTeam,
		Time:     m.GameTime,
	}
	if m.GameDate != nil {
		g.Date = *m.GameDate
	}
	return g
}
