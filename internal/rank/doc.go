// Package rank scores compounds against physicochemical criteria and assigns
// dense ranks.
//
// Each criterion maps a raw column value onto its (low, high) bounds:
//
//	sub_score = (value - low) / (high - low)
//
// Sub-scores are not clamped. A compound beyond the ideal range scores below
// 0 or above 1 in proportion to how far out it is. The total score is the
// unweighted sum of the sub-scores and the rank is the dense rank of the
// total, highest first.
//
// Score returns per-compound Records; Rank renders them as a table whose
// criterion and score columns are sorted by name (so each criterion sits
// next to its score column), followed by "Total Score" and "Rank".
package rank
