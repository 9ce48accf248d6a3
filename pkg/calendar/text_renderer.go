package calendar

import (
	"fmt"
	"strings"
)

const legend = "+ one workout, * two or more"

// TextRenderer draws calendar views as plain text for terminals.
type TextRenderer struct {
}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) RenderMonth(view MonthView) string {
	var b strings.Builder
	b.WriteString(view.Title)
	b.WriteString("\n")

	var header strings.Builder
	for _, letter := range view.Weekdays {
		fmt.Fprintf(&header, "%3s ", letter)
	}
	writeLine(&b, header.String())

	var row strings.Builder
	for i, cell := range view.Cells {
		if cell.IsPlaceholder() {
			row.WriteString("    ")
		} else {
			fmt.Fprintf(&row, "%3d%c", cell.Date.Day(), intensityMarker(cell.Intensity()))
		}
		if (i+1)%DaysPerWeek == 0 {
			writeLine(&b, row.String())
			row.Reset()
		}
	}
	if row.Len() > 0 {
		writeLine(&b, row.String())
	}

	b.WriteString(legend)
	b.WriteString("\n")
	b.WriteString(view.WeekSummary())
	b.WriteString("\n")
	return b.String()
}

func (r *TextRenderer) RenderDay(view DayView) string {
	var b strings.Builder
	b.WriteString(view.Heading)
	b.WriteString("\n\nPrevious Workouts\n")
	if len(view.Workouts) == 0 {
		b.WriteString("No workouts recorded\n")
		return b.String()
	}
	for _, entry := range view.Workouts {
		fmt.Fprintf(&b, "- [%s]\n", entry.Id)
		fmt.Fprintf(&b, "  Title: %s\n", entry.Title)
		fmt.Fprintf(&b, "  Description: %s\n", entry.Description)
		fmt.Fprintf(&b, "  Rating: %d\n", entry.Rating)
	}
	return b.String()
}

func (r *TextRenderer) RenderWeek(summary WeekSummary) string {
	return fmt.Sprintf("%s (%s - %s)\n%s\n",
		summary.Week.Number,
		summary.Week.Start.Format(DayHeadingLayout),
		summary.Week.End.AddDate(0, 0, -1).Format(DayHeadingLayout),
		summary.Message(),
	)
}

func intensityMarker(intensity float64) byte {
	switch {
	case intensity >= 1:
		return '*'
	case intensity > 0:
		return '+'
	default:
		return ' '
	}
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(strings.TrimRight(line, " "))
	b.WriteString("\n")
}
