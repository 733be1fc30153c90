package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/bernoulli/internal/fluid"
)

// FlowSketch draws the two-point streamline as an inclined pipe with
// flow arrows, labeled with the known inlet velocity and the solved
// exit velocity.
func FlowSketch(p fluid.Params, v2 float64, width, height int) string {
	if width < 24 {
		width = 24
	}
	if height < 7 {
		height = 7
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	// Vertical mapping with one world-unit of margin above and below.
	lo, hi := p.H1, p.H2
	if lo > hi {
		lo, hi = hi, lo
	}
	lo, hi = lo-1, hi+1
	row := func(h float64) int {
		frac := (h - lo) / (hi - lo)
		r := int(float64(height-1) * (1 - frac))
		if r < 0 {
			r = 0
		}
		if r >= height {
			r = height - 1
		}
		return r
	}

	left, right := 2, width-3
	for col := left; col <= right; col++ {
		frac := float64(col-left) / float64(right-left)
		h := p.H1 + (p.H2-p.H1)*frac
		r := row(h)

		grid[r][col] = '='
		if r > 0 {
			grid[r-1][col] = '-'
		}
		if r < height-1 {
			grid[r+1][col] = '-'
		}

		// Flow arrows, spaced closer where the local velocity is
		// higher.
		vLocal := p.V1 + (v2-p.V1)*frac
		vMax := p.V1
		if v2 > vMax {
			vMax = v2
		}
		if vMax > 0 {
			spacing := 8 - int(6*vLocal/vMax)
			if spacing < 2 {
				spacing = 2
			}
			if (col-left)%spacing == 0 {
				grid[r][col] = '>'
			}
		}
	}

	lines := make([]string, 0, height+2)
	lines = append(lines,
		fmt.Sprintf("v1 = %.2f m/s at h1 = %.2f m", p.V1, p.H1))
	for _, r := range grid {
		lines = append(lines, strings.TrimRight(string(r), " "))
	}
	lines = append(lines,
		fmt.Sprintf("%*s", width, fmt.Sprintf("v2 = %.2f m/s at h2 = %.2f m", v2, p.H2)))

	return strings.Join(lines, "\n")
}
