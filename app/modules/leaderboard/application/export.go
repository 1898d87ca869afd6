package leaderboardservice

import (
	"context"
	"fmt"

	leaderboarddomain "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/scorecard/app/shared/operation"
	"github.com/Black-And-White-Club/scorecard/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet    = "Results"
	scorecardsSheet = "Scorecards"
)

// ExportResultsXLSX renders a completed game as a workbook with a results
// sheet and a hole-by-hole scorecard sheet.
func (s *LeaderboardService) ExportResultsXLSX(ctx context.Context, gameID uuid.UUID) ([]byte, error) {
	result, err := operation.Run(s.telemetry(), ctx, "ExportResultsXLSX", gameID.String(), func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		snap, err := s.loadSnapshot(ctx, nil, gameID)
		if err != nil {
			return failureOrError[[]byte](err)
		}
		stored, err := s.storedResults(ctx, snap.game, "ExportResultsXLSX")
		if err != nil || stored.IsFailure() {
			return results.OperationResult[[]byte, error]{Failure: stored.Failure}, err
		}

		data, err := buildResultsWorkbook(snap, (*stored.Success).Results)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](data), nil
	})
	return operation.Unwrap(result, err)
}

func buildResultsWorkbook(snap *snapshot, standings []leaderboarddomain.GameResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(scorecardsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeResultsSheet(f, standings); err != nil {
		return nil, err
	}
	if err := writeScorecardsSheet(f, snap); err != nil {
		return nil, err
	}
	for _, sheet := range []string{resultsSheet, scorecardsSheet} {
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return nil, fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeResultsSheet(f *excelize.File, standings []leaderboarddomain.GameResult) error {
	header := []any{"Position", "Player", "Strokes", "Par", "To Par", "Handicap", "Net", "Holes Played", "Winner"}
	if err := setRow(f, resultsSheet, 1, header); err != nil {
		return err
	}
	for i, r := range standings {
		winner := ""
		if r.IsWinner {
			winner = "yes"
		}
		row := []any{r.Position, r.Name, r.TotalStrokes, r.TotalPar, r.TotalStrokes - r.TotalPar, r.Handicap, r.NetScore, r.HolesPlayed, winner}
		if err := setRow(f, resultsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeScorecardsSheet lays out one row per player with a par row on top.
// Unplayed holes are left blank.
func writeScorecardsSheet(f *excelize.File, snap *snapshot) error {
	holes := snap.game.ParTable

	header := []any{"Player"}
	parRow := []any{"Par"}
	front, back := 0, 0
	for _, h := range holes {
		header = append(header, h.Number)
		parRow = append(parRow, h.Par)
		if h.Number <= 9 {
			front += h.Par
		} else {
			back += h.Par
		}
	}
	header = append(header, "Out", "In", "Total")
	parRow = append(parRow, front, back, front+back)

	if err := setRow(f, scorecardsSheet, 1, header); err != nil {
		return err
	}
	if err := setRow(f, scorecardsSheet, 2, parRow); err != nil {
		return err
	}

	strokes := make(map[sharedtypes.PlayerID]map[int]int, len(snap.roster))
	for _, e := range snap.entries {
		if !e.Played() {
			continue
		}
		if strokes[e.PlayerID] == nil {
			strokes[e.PlayerID] = map[int]int{}
		}
		strokes[e.PlayerID][e.Hole] = *e.Strokes
	}

	for i, p := range snap.roster {
		row := []any{p.Name}
		for _, h := range holes {
			if v, ok := strokes[p.PlayerID][h.Number]; ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		agg := snap.aggregates[p.PlayerID]
		row = append(row, agg.Front9Total, agg.Back9Total, agg.Total)
		if err := setRow(f, scorecardsSheet, i+3, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
