package world

import (
	"strings"
	"unicode/utf8"

	"github.com/samdwyer/tileworld/internal/tile"
)

// EncodeRows serializes a grid as one string per row, one character per tile.
// Only tile types are written; neighbors and atlas coordinates are derived
// again on decode.
func EncodeRows[T tile.Kind[T]](g *Grid[T]) []string {
	rows := make([]string, g.Rows)
	var sb strings.Builder
	for r := 0; r < g.Rows; r++ {
		sb.Reset()
		sb.Grow(g.Cols)
		for c := 0; c < g.Cols; c++ {
			sb.WriteByte(g.cells[r][c].Type.Char())
		}
		rows[r] = sb.String()
	}
	return rows
}

// DecodeRows rebuilds a grid from encoded rows using decode for each
// character. Every rune is one cell; runes outside ASCII decode to the zero
// value. Ragged rows are padded with the zero value.
func DecodeRows[T tile.Kind[T]](rows []string, decode func(byte) T, atlas string) *Grid[T] {
	types := make([][]T, len(rows))
	for r, line := range rows {
		types[r] = make([]T, 0, utf8.RuneCountInString(line))
		for _, ch := range line {
			var t T
			if ch < utf8.RuneSelf {
				t = decode(byte(ch))
			}
			types[r] = append(types[r], t)
		}
	}
	return FromTypes(types, atlas)
}
