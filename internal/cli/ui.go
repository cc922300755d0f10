package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"college-trip-planner/internal/importer"
	"college-trip-planner/internal/models"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleCell = lipgloss.NewStyle().PaddingRight(2)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
)

func formatMiles(miles float64) string {
	return fmt.Sprintf("%.1f mi", miles)
}

// table renders rows as left-aligned columns; the first row is the header
func table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := styleCell.Width(widths[i] + 2)
			if r == 0 {
				style = style.Bold(true)
			}
			cells[i] = style.Render(cell)
		}
		b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
		b.WriteString("\n")
	}
	return b.String()
}

func renderTrip(w io.Writer, trip *models.TripResult) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("Trip from %s (%d colleges, %s)", trip.Start(), len(trip.Path), trip.Strategy)))

	rows := [][]string{{"#", "College", "Leg", "Total"}}
	for _, stop := range trip.Stops {
		leg := styleDim.Render("start")
		if stop.Order > 0 {
			leg = formatMiles(stop.DistanceFromPrevMiles)
			if !stop.KnownLeg {
				leg = styleWarning.Render("unknown")
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", stop.Order+1),
			stop.College,
			leg,
			formatMiles(stop.CumulativeDistanceMiles),
		})
	}
	fmt.Fprint(w, table(rows))

	if trip.Feasible {
		fmt.Fprintf(w, "%s Total distance %s\n", styleSuccess.Render(iconSuccess), styleNumber.Render(formatMiles(trip.TotalDistanceMiles)))
		return
	}
	fmt.Fprintf(w, "%s %d leg(s) have no stored distance; known legs total %s\n",
		styleWarning.Render(iconWarning), trip.UnknownLegs, styleNumber.Render(formatMiles(trip.TotalDistanceMiles)))
}

func renderDistances(w io.Writer, college string, distances []models.Distance) {
	fmt.Fprintln(w, styleTitle.Render("Distances from "+college))

	rows := [][]string{{"College", "Distance"}, {college, formatMiles(0)}}
	total := 0.0
	for _, d := range distances {
		rows = append(rows, []string{d.EndCollege, formatMiles(d.Miles)})
		total += d.Miles
	}
	fmt.Fprint(w, table(rows))
	fmt.Fprintf(w, "%s %s\n", styleDim.Render("Sum"), styleNumber.Render(formatMiles(total)))
}

func renderSouvenirs(w io.Writer, college string, souvenirs []models.Souvenir) {
	fmt.Fprintln(w, styleTitle.Render("Souvenirs at "+college))
	if len(souvenirs) == 0 {
		fmt.Fprintln(w, styleDim.Render("none"))
		return
	}

	rows := [][]string{{"Souvenir", "Price"}}
	for _, s := range souvenirs {
		rows = append(rows, []string{s.Name, fmt.Sprintf("$%.2f", s.Price)})
	}
	fmt.Fprint(w, table(rows))
}

func renderReport(w io.Writer, kind string, report *importer.Report) {
	fmt.Fprintf(w, "%s Imported %s %s (read %d, skipped %d)\n",
		styleSuccess.Render(iconSuccess), styleNumber.Render(fmt.Sprintf("%d", report.Imported)), kind,
		report.Read, len(report.Skipped))
	for _, s := range report.Skipped {
		fmt.Fprintf(w, "  %s line %d %s %s\n", styleWarning.Render(iconWarning), s.Line, iconArrow, s.Reason)
	}
}
