package interview

import "github.com/shopspring/decimal"

const (
	VerdictStrong  = "strong"
	VerdictAverage = "average"
	VerdictWeak    = "needs improvement"
)

// AverageScore is the arithmetic mean rounded half away from zero to one decimal;
// 0 for no scores.
func AverageScore(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := decimal.Zero
	for _, s := range scores {
		total = total.Add(decimal.NewFromInt(int64(s)))
	}
	avg := total.Div(decimal.NewFromInt(int64(len(scores)))).Round(1)
	return avg.InexactFloat64()
}

// Verdict classifies an average: [7,10] strong, [5,7) average, below 5 needs improvement.
func Verdict(avg float64) string {
	switch {
	case avg >= 7:
		return VerdictStrong
	case avg >= 5:
		return VerdictAverage
	default:
		return VerdictWeak
	}
}

func summarize(s Session) Summary {
	avg := AverageScore(s.Scores)
	scores := s.Scores
	if scores == nil {
		scores = []int{}
	}
	return Summary{
		Role:           s.Role,
		TotalQuestions: len(s.Questions),
		AverageScore:   avg,
		Scores:         scores,
		Verdict:        Verdict(avg),
	}
}
