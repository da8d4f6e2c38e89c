package metrics

import (
	"cmp"
	"slices"

	"github.com/spboyer/versus/internal/models"
)

// TieOrder selects how AUC orders points that share a false-positive rate.
type TieOrder string

const (
	// TiesThresholdOrder keeps tied points in curve (threshold) order.
	TiesThresholdOrder TieOrder = "threshold-order"

	// TiesAscendingTPR orders tied points by true-positive rate, so a vertical
	// run of the curve is integrated along its upper edge.
	TiesAscendingTPR TieOrder = "tpr"
)

// AUC integrates an ROC curve with the trapezoidal rule after a stable sort
// by false-positive rate, breaking ties as ties says. The area is signed and
// not clamped to [0, 1]; any NaN coordinate makes the result NaN.
func AUC(curve models.Curve, ties TieOrder) float64 {
	pts := slices.Clone(curve)
	slices.SortStableFunc(pts, func(p, q models.ROCPoint) int {
		c := cmp.Compare(p.X, q.X)
		if c == 0 && ties == TiesAscendingTPR {
			c = cmp.Compare(p.Y, q.Y)
		}
		return c
	})

	area := 0.0
	for i := 1; i < len(pts); i++ {
		x0, y0 := float64(pts[i-1].X), float64(pts[i-1].Y)
		x1, y1 := float64(pts[i].X), float64(pts[i].Y)
		area += 0.5 * (x1 - x0) * (y0 + y1)
	}
	return area
}

// AUCs integrates both models' curves.
func AUCs(a, b models.Curve, ties TieOrder) (float64, float64) {
	return AUC(a, ties), AUC(b, ties)
}
