package game

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Layout glyphs
const (
	wallGlyph        = '%'
	foodGlyph        = '.'
	protagonistGlyph = 'P'
	adversaryGlyph   = 'G'
	emptyGlyph       = ' '
)

var ErrInvalidLayout = errors.New("invalid layout")

// Position is a cell on the grid, X is the column and Y the row (row 0 on top)
type Position struct {
	X int
	Y int
}

// Layout is the static description of a maze: walls, initial food and the
// initial agent positions.
type Layout struct {
	Width       int
	Height      int
	Walls       [][]bool // Indexed by [y][x]
	Food        []Position
	Protagonist Position
	Adversaries []Position
}

// ParseLayout reads a layout from its text form, one row per line.
func ParseLayout(text string) (*Layout, error) {
	text = strings.ReplaceAll(text, "\r", "")
	rows := strings.Split(strings.Trim(text, "\n"), "\n")
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLayout)
	}

	layout := &Layout{
		Width:  len(rows[0]),
		Height: len(rows),
		Walls:  make([][]bool, len(rows)),
	}
	protagonists := 0
	for y, row := range rows {
		if len(row) != layout.Width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrInvalidLayout, y, len(row), layout.Width)
		}
		layout.Walls[y] = make([]bool, layout.Width)
		for x, glyph := range []byte(row) {
			p := Position{X: x, Y: y}
			switch glyph {
			case wallGlyph:
				layout.Walls[y][x] = true
			case foodGlyph:
				layout.Food = append(layout.Food, p)
			case protagonistGlyph:
				layout.Protagonist = p
				protagonists++
			case adversaryGlyph:
				layout.Adversaries = append(layout.Adversaries, p)
			case emptyGlyph:
			default:
				return nil, fmt.Errorf("%w: unknown glyph %q at (%d, %d)", ErrInvalidLayout, glyph, x, y)
			}
		}
	}
	if protagonists != 1 {
		return nil, fmt.Errorf("%w: expected exactly one protagonist, found %d", ErrInvalidLayout, protagonists)
	}
	return layout, nil
}

// MustParseLayout is like ParseLayout but panics on error. Intended for
// built-in layouts and tests.
func MustParseLayout(text string) *Layout {
	layout, err := ParseLayout(text)
	if err != nil {
		panic(err)
	}
	return layout
}

// LoadLayout resolves a built-in layout by name, falling back to reading a
// layout file at that path.
func LoadLayout(nameOrPath string) (*Layout, error) {
	if text, ok := Layouts[nameOrPath]; ok {
		return ParseLayout(text)
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is neither a built-in layout nor a readable file: %w", ErrInvalidLayout, nameOrPath, err)
	}
	return ParseLayout(string(data))
}

// IsWall reports whether p is a wall or lies outside the grid
func (l *Layout) IsWall(p Position) bool {
	if p.Y < 0 || p.Y >= l.Height || p.X < 0 || p.X >= l.Width {
		return true
	}
	return l.Walls[p.Y][p.X]
}

// NumAgents returns the protagonist plus every adversary
func (l *Layout) NumAgents() int {
	return 1 + len(l.Adversaries)
}

// ManhattanDistance returns |x1-x2| + |y1-y2|
func ManhattanDistance(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Built-in layouts, selectable by name from the command line
var Layouts = map[string]string{
	"tiny": `
%%%%%%%
%P . .%
% %%% %
%.   G%
%%%%%%%`,
	"small": `
%%%%%%%%%%
%P  .  . %
% %% %%% %
%.      .%
% %%%% % %
%G  .   G%
%%%%%%%%%%`,
	"open": `
%%%%%%%%%%%%
%P.  .   . %
%    G     %
%.   .   G.%
%%%%%%%%%%%%`,
}
