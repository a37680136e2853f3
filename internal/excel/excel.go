package excel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/derekprior/clubsched/internal/config"
	"github.com/derekprior/clubsched/internal/schedule"
	"github.com/derekprior/clubsched/internal/strategy"
	"github.com/xuri/excelize/v2"
)

const (
	MasterSheet  = "Master Schedule"
	SummarySheet = "Summary"

	dateLayout = "01/02/2006"
	byeLabel   = "BYE"

	maxSheetName = 31
)

// Generate creates an Excel workbook with the master schedule, per-team
// sheets and a summary of games and byes.
func Generate(cfg *config.Config, result *schedule.Result, dates map[string]schedule.GameDate) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeMasterSheet(f, cfg, result, dates); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}

	teams := cfg.ActiveTeams()
	if err := writeTeamSheets(f, cfg, teams, result.Assignments); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	stats := result.Stats
	if stats == nil {
		stats = schedule.ComputeStats(result.Assignments, teams, cfg.Season.Weeks)
	}
	if err := writeSummarySheet(f, teams, stats); err != nil {
		return nil, fmt.Errorf("writing summary sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func fieldColumnName(field int) string {
	return fmt.Sprintf("Field %d", field)
}

func writeMasterSheet(f *excelize.File, cfg *config.Config, result *schedule.Result, dates map[string]schedule.GameDate) error {
	sheet := MasterSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// Headers: Week, Date, Day, Time, Field 1, Field 2, ...
	headers := []string{"Week", "Date", "Day", "Time"}
	for field := 1; field <= cfg.AvailableFields; field++ {
		headers = append(headers, fieldColumnName(field))
	}
	writeHeaders(f, sheet, headers)

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Family: "Arial"},
	})
	fieldCellStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 14, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	type rowKey struct {
		week int
		time string
	}
	assignmentMap := make(map[rowKey]map[int]schedule.Assignment)
	for _, a := range result.Assignments {
		rk := rowKey{a.Slot.Week, a.Slot.Time}
		if assignmentMap[rk] == nil {
			assignmentMap[rk] = make(map[int]schedule.Assignment)
		}
		assignmentMap[rk][a.Slot.Field] = a
	}

	// One row per (week, start time), including empty ones so open slots
	// are visible for hand edits.
	row := 2
	for week := 1; week <= cfg.Season.Weeks; week++ {
		weekDate := schedule.WeekDate(cfg, week)
		for _, t := range cfg.GameStartTimes {
			fields := assignmentMap[rowKey{week, t}]
			rowDate := weekDate
			for field := 1; field <= cfg.AvailableFields; field++ {
				a, ok := fields[field]
				if !ok {
					continue
				}
				if gd, ok := dates[schedule.GameKey(a.Matchup.Home, a.Matchup.Away, week)]; ok {
					rowDate = gd.Date
				}
				break
			}

			f.SetCellValue(sheet, cellRef(1, row), week)
			f.SetCellValue(sheet, cellRef(2, row), rowDate.Format(dateLayout))
			f.SetCellValue(sheet, cellRef(3, row), rowDate.Format("Mon"))
			f.SetCellValue(sheet, cellRef(4, row), t)

			for field := 1; field <= cfg.AvailableFields; field++ {
				if a, ok := fields[field]; ok {
					f.SetCellValue(sheet, cellRef(field+4, row), gameCell(a.Matchup))
				}
			}

			if cellStyle != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(4, row), cellStyle)
				if len(headers) > 4 {
					f.SetCellStyle(sheet, cellRef(5, row), cellRef(len(headers), row), fieldCellStyle)
				}
			}
			row++
		}
	}

	// Set column widths (sized for Arial 14)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 16)
	f.SetColWidth(sheet, "C", "C", 8)
	f.SetColWidth(sheet, "D", "D", 12)
	for field := 1; field <= cfg.AvailableFields; field++ {
		col := colLetter(field + 4)
		f.SetColWidth(sheet, col, col, 30)
	}

	// Conditional formatting: empty field cells get light yellow
	lastRow := row - 1
	if lastRow >= 2 && cfg.AvailableFields > 0 {
		openFill, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFF2CC"}},
			Font: &excelize.Font{Size: 14, Family: "Arial"},
		})
		for field := 1; field <= cfg.AvailableFields; field++ {
			col := colLetter(field + 4)
			cellRange := fmt.Sprintf("%s2:%s%d", col, col, lastRow)
			formula := fmt.Sprintf(`LEN(%s2)=0`, col)
			f.SetConditionalFormat(sheet, cellRange, []excelize.ConditionalFormatOptions{
				{
					Type:     "formula",
					Criteria: formula,
					Format:   &openFill,
				},
			})
		}
	}

	return nil
}

// writeTeamSheets writes one sheet per team listing every week of the season,
// with bye weeks marked.
func writeTeamSheets(f *excelize.File, cfg *config.Config, teams []string, assignments []schedule.Assignment) error {
	sheets := TeamSheetNames(teams)
	for _, team := range teams {
		sheet := sheets[team]
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("team %q: %w", team, err)
		}

		headers := []string{"Week", "Date", "Time", "Field", "Opponent", "Home/Away", "Game"}
		writeHeaders(f, sheet, headers)

		byWeek := make(map[int][]schedule.Assignment)
		for _, a := range assignments {
			if a.Matchup.Home == team || a.Matchup.Away == team {
				byWeek[a.Slot.Week] = append(byWeek[a.Slot.Week], a)
			}
		}

		cellStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Size: 14, Family: "Arial"},
		})

		row := 2
		for week := 1; week <= cfg.Season.Weeks; week++ {
			games := byWeek[week]
			if len(games) == 0 {
				f.SetCellValue(sheet, cellRef(1, row), week)
				f.SetCellValue(sheet, cellRef(2, row), schedule.WeekDate(cfg, week).Format(dateLayout))
				f.SetCellValue(sheet, cellRef(5, row), byeLabel)
				row++
				continue
			}
			sort.Slice(games, func(i, j int) bool {
				return games[i].Slot.Time < games[j].Slot.Time
			})
			for _, a := range games {
				opponent, homeAway := a.Matchup.Away, "Home"
				if a.Matchup.Away == team {
					opponent, homeAway = a.Matchup.Home, "Away"
				}
				f.SetCellValue(sheet, cellRef(1, row), week)
				f.SetCellValue(sheet, cellRef(2, row), schedule.WeekDate(cfg, week).Format(dateLayout))
				f.SetCellValue(sheet, cellRef(3, row), a.Slot.Time)
				f.SetCellValue(sheet, cellRef(4, row), fieldColumnName(a.Slot.Field))
				f.SetCellValue(sheet, cellRef(5, row), opponent)
				f.SetCellValue(sheet, cellRef(6, row), homeAway)
				f.SetCellValue(sheet, cellRef(7, row), a.Matchup.Label)
				row++
			}
		}

		if cellStyle != 0 && row > 2 {
			f.SetCellStyle(sheet, cellRef(1, 2), cellRef(len(headers), row-1), cellStyle)
		}

		widths := map[string]float64{"A": 8, "B": 16, "C": 12, "D": 12, "E": 24, "F": 14, "G": 12}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}

	return nil
}

func writeSummarySheet(f *excelize.File, teams []string, stats *schedule.Stats) error {
	sheet := SummarySheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Team", "Games", "Home", "Away", "Byes"}
	writeHeaders(f, sheet, headers)

	for i, team := range teams {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), team)
		f.SetCellValue(sheet, cellRef(2, row), stats.GamesPerTeam[team])
		f.SetCellValue(sheet, cellRef(3, row), stats.HomeGamesPerTeam[team])
		f.SetCellValue(sheet, cellRef(4, row), stats.AwayGamesPerTeam[team])
		f.SetCellValue(sheet, cellRef(5, row), stats.ByeWeeksPerTeam[team])
	}

	f.SetColWidth(sheet, "A", "A", 24)
	return nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 14, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), headerStyle)
	}
}

// MasterGame is a game read back from the master sheet.
type MasterGame struct {
	Row   int
	Week  int
	Date  time.Time
	Time  string
	Field int
	Home  string
	Away  string
}

// ReadMaster parses the games on the master sheet. Cells that are not in
// "Away @ Home" form are ignored.
func ReadMaster(f *excelize.File) ([]MasterGame, error) {
	rows, err := f.GetRows(MasterSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", MasterSheet, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", MasterSheet)
	}

	// Header row determines field columns (index 4+)
	header := rows[0]
	type fieldCol struct {
		index int
		field int
	}
	var fieldCols []fieldCol
	for i := 4; i < len(header); i++ {
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(header[i], "Field")))
		if err != nil {
			return nil, fmt.Errorf("unexpected field column header %q", header[i])
		}
		fieldCols = append(fieldCols, fieldCol{i, n})
	}

	var games []MasterGame
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 4 || row[0] == "" {
			continue
		}

		week, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		date, err := time.Parse(dateLayout, row[1])
		if err != nil {
			continue
		}

		for _, fc := range fieldCols {
			if fc.index >= len(row) || row[fc.index] == "" {
				continue
			}
			away, home, ok := ParseGameCell(row[fc.index])
			if !ok {
				continue
			}
			games = append(games, MasterGame{
				Row:   i + 1,
				Week:  week,
				Date:  date,
				Time:  row[3],
				Field: fc.field,
				Home:  home,
				Away:  away,
			})
		}
	}

	return games, nil
}

// UpdateTeamSheets regenerates the team and summary sheets of a workbook from
// its (possibly hand-edited) master sheet.
func UpdateTeamSheets(path string, cfg *config.Config) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	games, err := ReadMaster(f)
	if err != nil {
		return err
	}

	assignments := make([]schedule.Assignment, 0, len(games))
	for _, g := range games {
		assignments = append(assignments, schedule.Assignment{
			Matchup: strategy.Matchup{Home: g.Home, Away: g.Away, Label: fmt.Sprintf("Game %d", len(assignments)+1)},
			Slot:    schedule.Slot{Week: g.Week, Field: g.Field, Time: g.Time},
		})
	}

	teams := cfg.ActiveTeams()
	for _, sheet := range TeamSheetNames(teams) {
		f.DeleteSheet(sheet)
	}
	f.DeleteSheet(SummarySheet)

	if err := writeTeamSheets(f, cfg, teams, assignments); err != nil {
		return fmt.Errorf("writing team sheets: %w", err)
	}
	stats := schedule.ComputeStats(assignments, teams, cfg.Season.Weeks)
	if err := writeSummarySheet(f, teams, stats); err != nil {
		return fmt.Errorf("writing summary sheet: %w", err)
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	return nil
}

// gameCell formats a matchup the way it appears on the master sheet.
func gameCell(m strategy.Matchup) string {
	return fmt.Sprintf("%s @ %s", m.Away, m.Home)
}

// ParseGameCell parses "Away @ Home" and returns (away, home, true).
// Returns ("", "", false) if the cell doesn't match the game format.
func ParseGameCell(cell string) (away, home string, ok bool) {
	away, home, found := strings.Cut(cell, " @ ")
	if !found || away == "" || home == "" {
		return "", "", false
	}
	return away, home, true
}

// SheetName makes a team name safe to use as a worksheet name.
func SheetName(team string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, team)
	return truncateRunes(name, maxSheetName)
}

// TeamSheetNames assigns each team a worksheet name. Names never clash with
// the master or summary sheet or with each other; Excel compares sheet names
// case-insensitively, so clashes get a " (2)", " (3)", ... suffix.
func TeamSheetNames(teams []string) map[string]string {
	used := map[string]bool{
		strings.ToLower(MasterSheet):  true,
		strings.ToLower(SummarySheet): true,
	}
	names := make(map[string]string, len(teams))
	for _, team := range teams {
		base := SheetName(team)
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		names[team] = name
	}
	return names
}

func truncateRunes(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
