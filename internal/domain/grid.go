package domain

import "strings"

// Cell is the label of a single grid square.
type Cell int

const (
	CellUnmarked Cell = iota
	CellSafe
	CellMine
)

func (c Cell) String() string {
	switch c {
	case CellSafe:
		return "safe"
	case CellMine:
		return "mine"
	default:
		return "unmarked"
	}
}

// Grid is the rendered 5×5 board, indexed [row][col].
type Grid [GridSize][GridSize]Cell

// Glyphs maps each cell label to the text shown for it.
type Glyphs struct {
	Mine     string `yaml:"mine"`
	Safe     string `yaml:"safe"`
	Unmarked string `yaml:"unmarked"`
}

// DefaultGlyphs are the emoji the bot has always replied with.
var DefaultGlyphs = Glyphs{Mine: "💣", Safe: "💎", Unmarked: "❌"}

// Render builds a grid from mine and safe positions. Safe cells are placed
// first and a mine never overwrites a safe cell, so every promised safe
// position renders as safe even when the mine draw overlaps it.
// Out-of-range positions are ignored.
func Render(mines, safe PositionSet) Grid {
	var g Grid
	for _, pos := range safe {
		if !InBounds(pos) {
			continue
		}
		row, col := RowCol(pos)
		g[row][col] = CellSafe
	}
	for _, pos := range mines {
		if !InBounds(pos) {
			continue
		}
		row, col := RowCol(pos)
		if g[row][col] == CellSafe {
			continue
		}
		g[row][col] = CellMine
	}
	return g
}

// At returns the label at a flattened position.
func (g Grid) At(pos int) Cell {
	row, col := RowCol(pos)
	return g[row][col]
}

// Count returns how many cells carry the given label.
func (g Grid) Count(c Cell) int {
	n := 0
	for _, row := range g {
		for _, cell := range row {
			if cell == c {
				n++
			}
		}
	}
	return n
}

// Format serialises the grid as GridSize newline-joined rows with one glyph
// per cell and no separators. Empty glyph fields fall back to DefaultGlyphs.
func (g Grid) Format(glyphs Glyphs) string {
	glyphs = glyphs.withDefaults()
	rows := make([]string, 0, GridSize)
	for _, row := range g {
		var b strings.Builder
		for _, cell := range row {
			b.WriteString(glyphs.For(cell))
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

// String formats the grid with DefaultGlyphs.
func (g Grid) String() string {
	return g.Format(DefaultGlyphs)
}

// For returns the glyph for a cell label.
func (gl Glyphs) For(c Cell) string {
	switch c {
	case CellSafe:
		return gl.Safe
	case CellMine:
		return gl.Mine
	default:
		return gl.Unmarked
	}
}

func (gl Glyphs) withDefaults() Glyphs {
	if gl.Mine == "" {
		gl.Mine = DefaultGlyphs.Mine
	}
	if gl.Safe == "" {
		gl.Safe = DefaultGlyphs.Safe
	}
	if gl.Unmarked == "" {
		gl.Unmarked = DefaultGlyphs.Unmarked
	}
	return gl
}
