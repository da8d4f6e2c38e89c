package models

// ConfusionMatrix holds the two-class outcome counts of one model.
// Field order matches the wire order TN, FP, FN, TP.
type ConfusionMatrix struct {
	TN int `json:"true_negatives"`
	FP int `json:"false_positives"`
	FN int `json:"false_negatives"`
	TP int `json:"true_positives"`
}

// Total returns the number of counted rows.
func (m ConfusionMatrix) Total() int {
	return m.TN + m.FP + m.FN + m.TP
}

// ROCPoint is one (false-positive rate, true-positive rate) sample of an ROC curve.
type ROCPoint struct {
	X Float `json:"x"`
	Y Float `json:"y"`
}

// Curve is an ROC curve in threshold order.
type Curve []ROCPoint

// Pair carries one result per model.
type Pair[T any] struct {
	A T `json:"model_a"`
	B T `json:"model_b"`
}

// PairOf builds a Pair from two values.
func PairOf[T any](a, b T) Pair[T] {
	return Pair[T]{A: a, B: b}
}

// FloatPair builds a Pair[Float] from two float64 values.
func FloatPair(a, b float64) Pair[Float] {
	return Pair[Float]{A: Float(a), B: Float(b)}
}
