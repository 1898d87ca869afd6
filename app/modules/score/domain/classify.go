package scoredomain

// ScoreType classifies a hole result against par.
type ScoreType string

const (
	ScoreTypeEagleOrBetter      ScoreType = "eagle_or_better"
	ScoreTypeBirdie             ScoreType = "birdie"
	ScoreTypePar                ScoreType = "par"
	ScoreTypeBogey              ScoreType = "bogey"
	ScoreTypeDoubleBogeyOrWorse ScoreType = "double_bogey_or_worse"
)

// Classify maps strokes-minus-par to a ScoreType.
func Classify(diff int) ScoreType {
	switch {
	case diff <= -2:
		return ScoreTypeEagleOrBetter
	case diff == -1:
		return ScoreTypeBirdie
	case diff == 0:
		return ScoreTypePar
	case diff == 1:
		return ScoreTypeBogey
	default:
		return ScoreTypeDoubleBogeyOrWorse
	}
}

// ClassifyHoles classifies every played hole of an aggregate. Unplayed holes
// map to the empty ScoreType.
func ClassifyHoles(agg PlayerAggregate) []ScoreType {
	out := make([]ScoreType, len(agg.PerHoleDiff))
	for i, d := range agg.PerHoleDiff {
		if d != nil {
			out[i] = Classify(*d)
		}
	}
	return out
}
