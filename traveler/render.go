package traveler

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"planner/mdp"
)

type Renderer struct {
	grid *Grid
	au   aurora.Aurora
}

// NewRenderer draws grid onto text. With colors off the output is plain ASCII
// apart from the policy arrows.
func NewRenderer(grid *Grid, colors bool) *Renderer {
	return &Renderer{grid: grid, au: aurora.NewAurora(colors)}
}

func (r *Renderer) glyph(c Cell) string {
	switch {
	case r.grid.IsWall(c):
		return r.au.White("#").String()
	case c == r.grid.Start:
		return r.au.Cyan("S").Bold().String()
	case c == r.grid.Goal:
		return r.au.Yellow("G").Bold().String()
	}
	if cost, ok := r.grid.costs[c]; ok {
		return r.au.Gray(12, fmt.Sprintf("%d", int(cost))).String()
	}
	return "."
}

func (r *Renderer) draw(w io.Writer, cell func(c Cell) string) error {
	var b strings.Builder
	for row := 0; row < r.grid.Rows; row++ {
		for col := 0; col < r.grid.Cols; col++ {
			b.WriteString(cell(Cell{Row: row, Col: col}))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) Grid(w io.Writer) error {
	return r.draw(w, r.glyph)
}

// Path marks the cells strictly between start and goal with '*'.
func (r *Renderer) Path(w io.Writer, path []Cell) error {
	on := make(map[Cell]bool, len(path))
	for _, c := range path {
		on[c] = true
	}
	return r.draw(w, func(c Cell) string {
		if on[c] && c != r.grid.Start && c != r.grid.Goal {
			return r.au.Green("*").Bold().String()
		}
		return r.glyph(c)
	})
}

func (r *Renderer) Values(w io.Writer, values map[Cell]float64) error {
	return r.draw(w, func(c Cell) string {
		if r.grid.IsWall(c) {
			return r.au.White(fmt.Sprintf("%8s", "####")).String()
		}
		v := values[c]
		text := fmt.Sprintf("%8.2f", v)
		if v < 0 {
			return r.au.Red(text).String()
		}
		return r.au.Blue(text).String()
	})
}

func (r *Renderer) Policy(w io.Writer, policy mdp.Policy[Cell, Move]) error {
	return r.draw(w, func(c Cell) string {
		if r.grid.IsWall(c) || c == r.grid.Goal {
			return r.glyph(c)
		}
		m, ok := policy[c]
		if !ok {
			return "?"
		}
		return r.au.Green(m.Arrow()).String()
	})
}
