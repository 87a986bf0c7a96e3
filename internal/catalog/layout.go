package catalog

// Grid dimensions of the periodic table: seven periods plus a gap row and
// the two f-block rows.
const (
	GridColumns = 18
	GridRows    = 10
)

// Row indexes of the detached f-block rows.
const (
	LanthanideRow = 8
	ActinideRow   = 9
)

var periodEnds = [...]int{2, 10, 18, 36, 54, 86, 118}

// Position returns the zero-based grid cell of an element. Lanthanides
// (57-71) and actinides (89-103) are placed on their own rows below the
// main table. ok is false for numbers outside 1..118.
func Position(atomicNumber int) (row, col int, ok bool) {
	z := atomicNumber
	if z < 1 || z > 118 {
		return 0, 0, false
	}

	switch {
	case z >= 57 && z <= 71:
		return LanthanideRow, 2 + (z - 57), true
	case z >= 89 && z <= 103:
		return ActinideRow, 2 + (z - 89), true
	}

	period, start := 0, 1
	for i, end := range periodEnds {
		if z <= end {
			period = i
			break
		}
		start = end + 1
	}
	offset := z - start

	switch period {
	case 0:
		if z == 1 {
			return 0, 0, true
		}
		return 0, GridColumns - 1, true
	case 1, 2:
		if offset < 2 {
			return period, offset, true
		}
		return period, offset + 10, true
	case 3, 4:
		return period, offset, true
	default:
		if offset < 2 {
			return period, offset, true
		}
		return period, offset - 14, true
	}
}
