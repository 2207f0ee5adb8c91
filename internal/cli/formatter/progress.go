package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lifeplan/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
	targetMark  = "│"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clamp01(pct)
	if width < 2 {
		width = 2
	}

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

// RenderCategoryBar draws one category's share with a marker at its target,
// e.g. "work      ████████│░░░  55% / 40%".
func RenderCategoryBar(c domain.Category, pct, target, width int) string {
	if width < 4 {
		width = 4
	}
	filled := min(max(pct*width/100, 0), width)
	mark := min(max(target*width/100, 0), width-1)

	cells := make([]string, width)
	for i := range cells {
		switch {
		case i == mark:
			cells[i] = targetMark
		case i < filled:
			cells[i] = filledBlock
		default:
			cells[i] = emptyBlock
		}
	}
	bar := CategoryStyle(c).Render(strings.Join(cells, ""))
	return fmt.Sprintf("%-9s %s %3d%% %s", c, bar, pct, Dim(fmt.Sprintf("/ %d%%", target)))
}

// RenderBreakdown renders one bar per category in canonical order.
func RenderBreakdown(b domain.Breakdown, width int) string {
	var out strings.Builder
	for _, c := range domain.Categories {
		out.WriteString(RenderCategoryBar(c, b[c], domain.OptimalDistribution[c], width))
		out.WriteString("\n")
	}
	return out.String()
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
