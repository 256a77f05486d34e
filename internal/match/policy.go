package match

// Threshold is the fixed similarity cutoff above which two items are
// considered a candidate match. Cosine similarity on pooled backbone
// features empirically separates "same object, different photo" from
// "different object" around this band; no per-category calibration is
// attempted.
const Threshold = 0.75

// IsMatch applies the threshold policy to a similarity score. The boundary
// is inclusive.
func IsMatch(score float64) bool {
	return score >= Threshold
}
