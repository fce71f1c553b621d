package angular

// directionCounts maps each published Lebedev precision (algebraic order of
// the rule) to its number of angular directions. Odd precisions inside
// [MinPrec, MaxPrec] that are absent here (33, 37, 39, ...) have no
// published rule and therefore no dataset file.
var directionCounts = map[int]int{
	3:   6,
	5:   14,
	7:   26,
	9:   38,
	11:  50,
	13:  74,
	15:  86,
	17:  110,
	19:  146,
	21:  170,
	23:  194,
	25:  230,
	27:  266,
	29:  302,
	31:  350,
	35:  434,
	41:  590,
	47:  770,
	53:  974,
	59:  1202,
	65:  1454,
	71:  1730,
	77:  2030,
	83:  2354,
	89:  2702,
	95:  3074,
	101: 3470,
	107: 3890,
	113: 4334,
	119: 4802,
	125: 5294,
	131: 5810,
}

// DirectionCount returns the number of angular directions for a published
// Lebedev precision, and whether a rule of that precision exists.
func DirectionCount(prec int) (int, bool) {
	n, ok := directionCounts[prec]
	return n, ok
}
