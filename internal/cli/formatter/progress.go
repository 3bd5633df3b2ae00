package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/workflow"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

// StageLine renders "[2/4] Fetching weather forecast" for headless output.
func StageLine(p workflow.Progress) string {
	return fmt.Sprintf("%s %s", Dim(fmt.Sprintf("[%d/%d]", p.Stage+1, p.Total)), p.Label)
}

// RenderStages lists every stage with a marker: done stages are checked, the
// current one is highlighted and later ones are hollow.
func RenderStages(stages []workflow.Stage, current int) string {
	var b strings.Builder
	for i, s := range stages {
		switch {
		case i < current:
			b.WriteString("  " + StyleGreen.Render("✔") + " " + Dim(s.Label))
		case i == current:
			b.WriteString("  " + StylePurple.Render("●") + " " + Bold(s.Label))
		default:
			b.WriteString("  " + Dim("○ "+s.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
