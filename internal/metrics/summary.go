package metrics

import (
	"math"

	"github.com/spboyer/versus/internal/models"
)

// Summarize derives precision, recall, specificity, F1 and accuracy from an
// exact-mode matrix. Unlike ROC rates, a zero denominator yields 0 here.
func Summarize(m models.ConfusionMatrix) models.RateSummary {
	tp, fp, tn, fn := float64(m.TP), float64(m.FP), float64(m.TN), float64(m.FN)

	precision := safeDivide(tp, tp+fp)
	recall := safeDivide(tp, tp+fn)

	var f1 float64
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return models.RateSummary{
		Precision:   roundTo4(precision),
		Recall:      roundTo4(recall),
		Specificity: roundTo4(safeDivide(tn, tn+fp)),
		F1:          roundTo4(f1),
		Accuracy:    roundTo4(safeDivide(tp+tn, tp+fp+tn+fn)),
	}
}

func safeDivide(num, den float64) float64 {
	if den == 0 {
		return 0.0
	}
	return num / den
}

func roundTo4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
