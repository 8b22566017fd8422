// Package domain defines core business entities and value objects for minebot.
//
// The domain layer is independent of infrastructure concerns: it knows how
// a mine count is validated, how many safe cells a prediction promises and
// how two position sets become a display grid, but nothing about chat
// transports, storage or configuration files.
package domain

import (
	"math"
	"strconv"
	"strings"
)

// Board geometry. Positions index a flattened GridSize×GridSize board.
const (
	GridSize  = 5
	CellCount = GridSize * GridSize
)

// Mine count bounds accepted from users.
const (
	MinMines = 1
	MaxMines = CellCount - 1
)

// MineCount is the number of mine cells a user asked to mark.
type MineCount int

// Valid reports whether the count lies in [MinMines, MaxMines].
func (m MineCount) Valid() bool {
	return m >= MinMines && m <= MaxMines
}

// SafeCellQuota returns how many cells a prediction promises as safe for
// the given mine count.
func SafeCellQuota(m MineCount) int {
	switch {
	case m < 4:
		return 4
	case m <= 6:
		return 3
	default:
		return 2
	}
}

// ParseMineCount validates the argument of a /predict command.
// The argument must be a finite decimal number; its leading integer part is
// the count, so "3.5" means 3. Anything else yields ErrInvalidMineCount;
// counts outside the accepted range yield ErrMineCountOutOfRange. Both are
// wrapped in a *ValidationError carrying the reply shown to the user.
func ParseMineCount(arg string) (MineCount, error) {
	arg = strings.TrimSpace(arg)
	f, err := strconv.ParseFloat(arg, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, newValidationError(ErrInvalidMineCount, MsgInvalidMineCount)
	}
	digits := leadingInteger(arg)
	if digits == "" {
		return 0, newValidationError(ErrInvalidMineCount, MsgInvalidMineCount)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, newValidationError(ErrMineCountOutOfRange, MsgMineCountOutOfRange)
	}
	count := MineCount(n)
	if !count.Valid() {
		return 0, newValidationError(ErrMineCountOutOfRange, MsgMineCountOutOfRange)
	}
	return count, nil
}

// leadingInteger returns the optional sign and the decimal digits that start
// s, or "" when s does not start with a digit.
func leadingInteger(s string) string {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return ""
	}
	return s[:end]
}

// PositionSet is a duplicate-free collection of board positions in
// [0, CellCount). Order carries no meaning.
type PositionSet []int

// Contains reports whether pos is part of the set.
func (s PositionSet) Contains(pos int) bool {
	for _, p := range s {
		if p == pos {
			return true
		}
	}
	return false
}

// RowCol converts a flattened position into its row and column.
func RowCol(pos int) (row, col int) {
	return pos / GridSize, pos % GridSize
}

// InBounds reports whether pos addresses a cell on the board.
func InBounds(pos int) bool {
	return pos >= 0 && pos < CellCount
}
