package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAvailableFields = 1
	DefaultSeasonWeeks     = 12
	DefaultStrategy        = "round_robin"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

// Weekday is a time.Weekday parsed from a day name such as "Saturday".
type Weekday struct {
	Day   time.Weekday
	Valid bool
}

func (w *Weekday) UnmarshalYAML(value *yaml.Node) error {
	day, err := ParseWeekday(value.Value)
	if err != nil {
		return err
	}
	w.Day = day
	w.Valid = true
	return nil
}

// ParseWeekday converts a weekday name (case-insensitive, "Sat" or "Saturday")
// into a time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || (len(n) == 3 && strings.HasPrefix(full, n)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid day of week %q", name)
}

type League struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name" validate:"required"`
	GameTime string `yaml:"game_time"`
}

type Season struct {
	StartDate Date    `yaml:"start_date" validate:"required"`
	Weeks     int     `yaml:"weeks" validate:"gte=0"`
	DayOfWeek Weekday `yaml:"day_of_week" validate:"required"`
}

// Team is a league team. Teams are active unless marked otherwise; only
// active teams are scheduled.
type Team struct {
	Name     string `yaml:"name" validate:"required"`
	Inactive bool   `yaml:"inactive"`
}

type Config struct {
	League          League   `yaml:"league"`
	Season          Season   `yaml:"season"`
	AvailableFields int      `yaml:"available_fields" validate:"gte=0"`
	GameStartTimes  []string `yaml:"game_start_times" validate:"dive,required"`
	Teams           []Team   `yaml:"teams" validate:"dive"`
	Strategy        string   `yaml:"strategy"`
	Seed            int64    `yaml:"seed"`
}

// ActiveTeams returns the names of all active teams in config order.
func (c *Config) ActiveTeams() []string {
	var teams []string
	for _, t := range c.Teams {
		if !t.Inactive {
			teams = append(teams, t.Name)
		}
	}
	return teams
}

// AllTeams returns every team name, active or not.
func (c *Config) AllTeams() []string {
	teams := make([]string, 0, len(c.Teams))
	for _, t := range c.Teams {
		teams = append(teams, t.Name)
	}
	return teams
}

// GamesPerWeek is the number of games that fit into one week of the season.
func (c *Config) GamesPerWeek() int {
	return c.AvailableFields * len(c.GameStartTimes)
}

// LeagueID returns the configured league id, falling back to a slug of the
// league name.
func (c *Config) LeagueID() string {
	if c.League.ID != "" {
		return c.League.ID
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c.League.Name)), " ", "-")
}

// LoadFromBytes parses YAML bytes into a Config, applies defaults and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) applyDefaults() {
	if c.AvailableFields == 0 {
		c.AvailableFields = DefaultAvailableFields
	}
	if c.Season.Weeks == 0 {
		c.Season.Weeks = DefaultSeasonWeeks
	}
	if len(c.GameStartTimes) == 0 && c.League.GameTime != "" {
		c.GameStartTimes = []string{c.League.GameTime}
	}
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}
}

var structValidator = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) validate() error {
	if err := structValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid config: %s failed %q check", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	seen := make(map[string]bool)
	for _, t := range c.Teams {
		if seen[t.Name] {
			return fmt.Errorf("team %q is listed more than once", t.Name)
		}
		seen[t.Name] = true
	}

	times := make(map[string]bool)
	for _, tm := range c.GameStartTimes {
		if times[tm] {
			return fmt.Errorf("game start time %q is listed more than once", tm)
		}
		times[tm] = true
	}

	return nil
}
