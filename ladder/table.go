/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

// Adjustment is the rating change applied to both sides of a decided match.
type Adjustment struct {
	Gain int
	Loss int
}

// adjustments is indexed by the result of LookupIndex. The final entry is
// never selected since thresholds has one fewer element; it is kept so the
// table matches the published club chart.
var adjustments = [...]Adjustment{
	{3, 0},
	{5, -2},
	{8, -5},
	{10, -7},
	{13, -9},
	{15, -11},
	{18, -14},
	{20, -16},
	{25, -21},
	{30, -26},
	{35, -31},
	{40, -36},
	{45, -41},
	{50, -45},
	{55, -50},
}

// thresholds are winner-minus-loser rating gaps, highest first.
var thresholds = [...]int{
	401, 301, 201, 151, 101, 51, 26, -24, -49, -99, -149, -199, -299, -399,
}

// bracketFloors holds the minimum rating of brackets 1 through 6; anything
// below the last floor is bracket 7.
var bracketFloors = [...]int{1900, 1600, 1300, 1000, 700, 400}

// LowestBracket is the bracket for ratings below every floor.
const LowestBracket = len(bracketFloors) + 1

// LookupIndex returns the index of the first threshold that delta meets or
// exceeds. A delta below every threshold saturates at the last threshold
// index.
func LookupIndex(delta int) int {
	for i, t := range thresholds {
		if delta >= t {
			return i
		}
	}
	return len(thresholds) - 1
}

// AdjustmentFor returns the table index and the gain/loss pair for a winner
// whose rating exceeds the loser's by delta (negative for an upset).
func AdjustmentFor(delta int) (int, Adjustment) {
	idx := LookupIndex(delta)
	return idx, adjustments[idx]
}

// BracketForRating maps a rating to its bracket, 1 being the strongest.
func BracketForRating(rating int) int {
	for i, floor := range bracketFloors {
		if rating >= floor {
			return i + 1
		}
	}
	return LowestBracket
}

// TableRow is one line of the rating chart, for display.
type TableRow struct {
	Index      int
	Threshold  int
	HasFloor   bool
	Adjustment Adjustment
}

// Table returns the rating chart in lookup order. The final row has no
// threshold of its own.
func Table() []TableRow {
	rows := make([]TableRow, len(adjustments))
	for i, adj := range adjustments {
		rows[i] = TableRow{Index: i, Adjustment: adj}
		if i < len(thresholds) {
			rows[i].Threshold = thresholds[i]
			rows[i].HasFloor = true
		}
	}
	return rows
}

// BracketFloor returns the minimum rating for bracket b and whether b has a
// floor at all (the lowest bracket does not).
func BracketFloor(b int) (int, bool) {
	if b < 1 || b > len(bracketFloors) {
		return 0, false
	}
	return bracketFloors[b-1], true
}
