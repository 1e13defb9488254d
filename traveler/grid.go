package traveler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrMalformedGrid = errors.New("malformed grid")

type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

type Move int

const (
	Up Move = iota
	Down
	Left
	Right
	Stay
)

// Moves lists the moves available in every non-goal cell, in enumeration order.
var Moves = []Move{Up, Down, Left, Right}

func (m Move) String() string {
	switch m {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Stay:
		return "stay"
	default:
		return fmt.Sprintf("move(%d)", int(m))
	}
}

func (m Move) Arrow() string {
	switch m {
	case Up:
		return "↑"
	case Down:
		return "↓"
	case Left:
		return "←"
	case Right:
		return "→"
	default:
		return "•"
	}
}

func (m Move) apply(c Cell) Cell {
	switch m {
	case Up:
		c.Row--
	case Down:
		c.Row++
	case Left:
		c.Col--
	case Right:
		c.Col++
	}
	return c
}

// Grid is a rectangular map. '#' marks a wall, 'S' the start, 'G' the goal,
// '.' a free cell with cost 1 and '1'-'9' a free cell with that entry cost.
type Grid struct {
	Rows  int
	Cols  int
	Start Cell
	Goal  Cell
	walls map[Cell]bool
	costs map[Cell]float64
}

func ReadGrid(r io.Reader) (*Grid, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}
	return ParseGrid(lines)
}

func ParseGrid(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}

	g := &Grid{
		Rows:  len(lines),
		Cols:  len(lines[0]),
		walls: make(map[Cell]bool),
		costs: make(map[Cell]float64),
	}
	starts, goals := 0, 0
	for row, line := range lines {
		if len(line) != g.Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformedGrid, row, len(line), g.Cols)
		}
		for col, ch := range line {
			c := Cell{Row: row, Col: col}
			switch {
			case ch == '#':
				g.walls[c] = true
			case ch == 'S':
				g.Start = c
				starts++
			case ch == 'G':
				g.Goal = c
				goals++
			case ch == '.':
			case ch >= '1' && ch <= '9':
				g.costs[c] = float64(ch - '0')
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %v", ErrMalformedGrid, ch, c)
			}
		}
	}
	if starts != 1 || goals != 1 {
		return nil, fmt.Errorf("%w: need exactly one S and one G, found %d and %d", ErrMalformedGrid, starts, goals)
	}
	return g, nil
}

func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

func (g *Grid) IsWall(c Cell) bool {
	return g.walls[c]
}

func (g *Grid) IsFree(c Cell) bool {
	return g.InBounds(c) && !g.walls[c]
}

// Cost of entering c.
func (g *Grid) Cost(c Cell) float64 {
	if cost, ok := g.costs[c]; ok {
		return cost
	}
	return 1
}

// Cells lists the free cells in row-major order.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Rows*g.Cols)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if c := (Cell{Row: row, Col: col}); !g.walls[c] {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// Neighbor is where m leads from c; blocked moves leave the traveler in place.
func (g *Grid) Neighbor(c Cell, m Move) Cell {
	next := m.apply(c)
	if !g.IsFree(next) {
		return c
	}
	return next
}
