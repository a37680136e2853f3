package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/derekprior/clubsched/internal/config"
	"github.com/derekprior/clubsched/internal/excel"
	"github.com/derekprior/clubsched/internal/logging"
	"github.com/derekprior/clubsched/internal/schedule"
	"github.com/derekprior/clubsched/internal/store"
	"github.com/derekprior/clubsched/internal/store/memory"
	"github.com/derekprior/clubsched/internal/store/postgres"
	"github.com/derekprior/clubsched/internal/validator"
)

const (
	defaultConfigFile = "config.yaml"
	databaseURLEnv    = "CLUBSCHED_DATABASE_URL"
)

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func resolveDatabaseURL(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(databaseURLEnv)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	rootCmd := &cobra.Command{
		Use:   "clubsched",
		Short: "Weekly round-robin schedule generator for recreational leagues",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.SetDefault(logging.NewConsole(level))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and check schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var opts generateOptions
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			opts.configPath = configPath
			opts.seedSet = cmd.Flags().Changed("seed")
			opts.databaseURL = resolveDatabaseURL(opts.databaseURL)
			return runGenerate(cmd, opts)
		},
	}
	generateCmd.Flags().StringVarP(&opts.outputPath, "output", "o", "schedule.xlsx", "Output Excel file path")
	generateCmd.Flags().Int64Var(&opts.seed, "seed", 0, "Random seed (default: seed from config, else time based)")
	generateCmd.Flags().StringVar(&opts.databaseURL, "database-url", "", "Postgres URL to store games in (default: $"+databaseURLEnv+")")
	generateCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Check games against an in-memory store instead of the database")

	checkCmd := &cobra.Command{
		Use:          "check <schedule.xlsx>",
		Short:        "Check an edited schedule and refresh its team sheets",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runCheck(cmd, configPath, args[0])
		},
	}

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the game database",
	}

	var migrateURL string
	migrateCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply database migrations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, resolveDatabaseURL(migrateURL))
		},
	}
	migrateCmd.Flags().StringVar(&migrateURL, "database-url", "", "Postgres URL (default: $"+databaseURLEnv+")")

	scheduleCmd.AddCommand(generateCmd, checkCmd)
	dbCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd, dbCmd)
	return rootCmd
}

func runInit(cmd *cobra.Command, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# League Season Configuration
# ===========================
# This file defines the parameters for generating a weekly schedule.

league:
  name: "Thursday Night Softball"
  # Used when game_start_times is empty.
  game_time: "6:30 PM"

# Every game in a week is played on the same day. The first game day is the
# first day_of_week on or after start_date.
season:
  start_date: "2026-04-20"
  weeks: 12
  day_of_week: Thursday

# Fields and start times make up the weekly grid. Each week holds
# available_fields × len(game_start_times) games.
available_fields: 2
game_start_times: ["6:30 PM", "8:00 PM"]

# Team names must be unique. Inactive teams stay on the roster but are not
# scheduled.
teams:
  - name: Sharks
  - name: Jets
  - name: Comets
  - name: Owls
  - name: Foxes
  - name: Bears
    inactive: true

# Strategy determines how matchups are generated.
# "round_robin" plays every pairing once, then repeats with home and away
# swapped until the season is full.
strategy: round_robin

# Optional. The same seed always produces the same schedule.
# seed: 42
`

type generateOptions struct {
	configPath  string
	outputPath  string
	seed        int64
	seedSet     bool
	databaseURL string
	dryRun      bool
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	out := cmd.OutOrStdout()
	logger := logging.Default()

	cfg, err := config.LoadFromFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	teams := cfg.ActiveTeams()
	if issues := schedule.ValidateParameters(cfg, teams); len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s\n", issue)
		}
		return fmt.Errorf("%d configuration problem(s) prevent scheduling", len(issues))
	}

	seed := opts.seed
	switch {
	case opts.seedSet:
	case cfg.Seed != 0:
		seed = cfg.Seed
	default:
		seed = time.Now().UnixNano()
	}
	logger.Info("generating schedule", "league", cfg.LeagueID(), "teams", len(teams), "weeks", cfg.Season.Weeks, "seed", seed)

	fmt.Fprintf(out, "Scheduling %d teams over %d weeks (%d games per week)...\n",
		len(teams), cfg.Season.Weeks, cfg.GamesPerWeek())

	result := schedule.Generate(cfg, teams, rand.New(rand.NewSource(seed)))
	dates := schedule.CalculateGameDates(cfg, result.Assignments)

	fmt.Fprintf(out, "✓ %d games scheduled (seed %d)\n", len(result.Assignments), seed)

	fmt.Fprintln(out, "\nPer Team Metrics:")
	fmt.Fprintf(out, "  %-15s %6s %4s %4s %4s\n", "Team", "Games", "Home", "Away", "Byes")
	for _, team := range teams {
		fmt.Fprintf(out, "  %-15s %6d %4d %4d %4d\n", team,
			result.Stats.GamesPerTeam[team],
			result.Stats.HomeGamesPerTeam[team],
			result.Stats.AwayGamesPerTeam[team],
			result.Stats.ByeWeeksPerTeam[team])
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(out, "\nWarnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  ⚠ %s\n", w)
		}
	} else {
		fmt.Fprintln(out, "\n✓ No warnings")
	}

	f, err := excel.Generate(cfg, result, dates)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(opts.outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Fprintf(out, "\n✓ Schedule saved to %s\n", opts.outputPath)

	games := store.BuildGames(cfg.LeagueID(), result.Assignments, dates)
	switch {
	case opts.dryRun:
		return saveGames(cmd.Context(), cmd, memory.NewGameRepository(nil), cfg.LeagueID(), games)
	case opts.databaseURL != "":
		db, err := postgres.Open(cmd.Context(), opts.databaseURL)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		repo := postgres.NewGameRepository(db, logging.Default().With("component", "store"))
		return saveGames(cmd.Context(), cmd, repo, cfg.LeagueID(), games)
	}
	return nil
}

func saveGames(ctx context.Context, cmd *cobra.Command, repo store.Repository, leagueID string, games []store.Game) error {
	if err := repo.ReplaceLeagueGames(ctx, leagueID, games); err != nil {
		return fmt.Errorf("saving games: %w", err)
	}

	stored, err := repo.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("listing games: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d games stored for league %s\n", len(stored), leagueID)
	return nil
}

func runCheck(cmd *cobra.Command, configPath, schedulePath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		where := ""
		if v.Row > 0 {
			where = fmt.Sprintf(" (row %d)", v.Row)
		}
		switch v.Type {
		case "error":
			errors++
			fmt.Fprintf(out, "✗ Error%s: %s\n", where, v.Message)
		case "warning":
			warnings++
			fmt.Fprintf(out, "⚠ Warning%s: %s\n", where, v.Message)
		}
	}

	fmt.Fprintf(out, "\nCheck complete: %d errors, %d warnings\n", errors, warnings)

	// Regenerate team sheets from master schedule
	if err := excel.UpdateTeamSheets(schedulePath, cfg); err != nil {
		return fmt.Errorf("updating team sheets: %w", err)
	}
	fmt.Fprintf(out, "✓ Team sheets updated in %s\n", schedulePath)

	if errors > 0 {
		return fmt.Errorf("%d schedule errors found", errors)
	}
	return nil
}

func runMigrate(cmd *cobra.Command, databaseURL string) error {
	if databaseURL == "" {
		return fmt.Errorf("a database URL is required: pass --database-url or set %s", databaseURLEnv)
	}

	version, err := postgres.Migrate(databaseURL)
	if err != nil {
		return fmt.Errorf("migrating: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Database at schema version %d\n", version)
	return nil
}
