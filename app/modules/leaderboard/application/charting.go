package leaderboardservice

import (
	"bytes"
	"context"
	"strconv"

	"github.com/Black-And-White-Club/scorecard/app/shared/operation"
	"github.com/Black-And-White-Club/scorecard/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors used for rendered charts. Series colors are
// assigned to players in roster order and wrap around.
type ChartPalette struct {
	Background drawing.Color
	TextColor  drawing.Color
	Series     []drawing.Color
}

var DefaultChartPalette = ChartPalette{
	Background: drawing.ColorWhite,
	TextColor:  drawing.ColorFromHex("1f2933"),
	Series: []drawing.Color{
		drawing.ColorFromHex("2e7d32"),
		drawing.ColorFromHex("c62828"),
		drawing.ColorFromHex("1565c0"),
		drawing.ColorFromHex("f9a825"),
		drawing.ColorFromHex("6a1b9a"),
		drawing.ColorFromHex("00838f"),
	},
}

// RenderScoreProgressChart draws each player's running score to par across
// the holes they have played. Games with no strokes yet get a placeholder.
func (s *LeaderboardService) RenderScoreProgressChart(ctx context.Context, gameID uuid.UUID) ([]byte, error) {
	result, err := operation.Run(s.telemetry(), ctx, "RenderScoreProgressChart", gameID.String(), func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		snap, err := s.loadSnapshot(ctx, nil, gameID)
		if err != nil {
			return failureOrError[[]byte](err)
		}
		png, err := GenerateScoreProgressChart(snap.game.ParTable, snap.roster, snap.entries, s.palette)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](png), nil
	})
	return operation.Unwrap(result, err)
}

// ScoreProgression returns the running strokes-minus-par after each played
// hole, starting from (0, 0) before the first tee. Unplayed holes are skipped.
func ScoreProgression(playerID sharedtypes.PlayerID, entries []sharedtypes.ScoreEntry, parTable sharedtypes.ParTable) (holes, toPar []float64) {
	byHole := make(map[int]int, len(parTable))
	for _, e := range entries {
		if e.PlayerID == playerID && e.Played() {
			byHole[e.Hole] = *e.Strokes
		}
	}
	if len(byHole) == 0 {
		return nil, nil
	}

	holes = []float64{0}
	toPar = []float64{0}
	running := 0
	for _, h := range parTable {
		strokes, ok := byHole[h.Number]
		if !ok {
			continue
		}
		running += strokes - h.Par
		holes = append(holes, float64(h.Number))
		toPar = append(toPar, float64(running))
	}
	return holes, toPar
}

// GenerateScoreProgressChart renders a PNG line chart with one series per
// player who has played at least one hole.
func GenerateScoreProgressChart(parTable sharedtypes.ParTable, roster []sharedtypes.RosterEntry, entries []sharedtypes.ScoreEntry, palette ChartPalette) ([]byte, error) {
	var series []chart.Series
	minY, maxY := 0.0, 0.0
	for _, p := range roster {
		xs, ys := ScoreProgression(p.PlayerID, entries, parTable)
		if len(xs) == 0 {
			continue
		}
		for _, y := range ys {
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
		color := palette.Series[len(series)%len(palette.Series)]
		series = append(series, chart.ContinuousSeries{
			Name:    p.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotWidth:    3,
				DotColor:    color,
			},
		})
	}
	if len(series) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	ticks := make([]chart.Tick, 0, len(parTable)+1)
	for i := 0; i <= len(parTable); i++ {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: strconv.Itoa(i)})
	}

	graph := chart.Chart{
		Width:  900,
		Height: 450,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:  "Hole",
			Style: chart.Style{FontColor: palette.TextColor},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(parTable))},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "To Par",
			Style: chart.Style{FontColor: palette.TextColor},
			// Padded so an all-even round still has a non-empty range.
			Range: &chart.ContinuousRange{Min: minY - 1, Max: maxY + 1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(f))
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No scores entered yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{Style: chart.Style{Hidden: true}},
		// Render needs one visible series; this one is drawn in the background color.
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 1},
			Style:   chart.Style{StrokeColor: palette.Background, StrokeWidth: 1},
		}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
