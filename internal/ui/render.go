package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/timetrack/internal/model"
	"github.com/Tiliavir/timetrack/internal/report"
	"github.com/Tiliavir/timetrack/internal/timecalc"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	totalStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	deficitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	surplusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// kindLabel maps event kinds to day-report wording.
func kindLabel(k model.Kind) string {
	switch k {
	case model.Arrive:
		return "arrived"
	case model.Break:
		return "break"
	case model.Resume:
		return "resumed"
	case model.Leave:
		return "left"
	}
	return string(k)
}

// signed colors a signed delta: deficits red, surpluses green.
func signed(d time.Duration) string {
	s := timecalc.FormatSigned(d)
	if d < 0 {
		return deficitStyle.Render(s)
	}
	return surplusStyle.Render(s)
}

// RenderDay renders a day report: one line per event plus a summary line.
func RenderDay(r report.DayReport) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Date.Format("Monday, 2006-01-02")))
	b.WriteString("\n")

	for _, ev := range r.Events {
		fmt.Fprintf(&b, "  %s  %s\n", ev.Time.Format("15:04"), kindLabel(ev.Kind))
	}

	summary := fmt.Sprintf("Worked: %s", timecalc.FormatDuration(r.Worked))
	if r.Present {
		summary += " — still here"
	}
	b.WriteString(totalStyle.Render(summary))
	b.WriteString("\n")
	return b.String()
}

// RenderWeek renders the week table: one row per day, then a summary footer
// with the quota figures that apply.
func RenderWeek(r report.WeekReport) string {
	// Pad before styling: lipgloss escape codes would throw off %-*s widths.
	const dayWidth, hoursWidth = 16, 8

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Week %d-W%02d", r.Year, r.Week)))
	b.WriteString("\n")

	for _, row := range r.Rows {
		label := row.Date.Format("Mon 2006-01-02")
		if row.Absent {
			fmt.Fprintf(&b, "  %-*s%s\n", dayWidth, label, mutedStyle.Render("—"))
			continue
		}
		fmt.Fprintf(&b, "  %-*s%*s  %s", dayWidth, label, hoursWidth, timecalc.FormatHours(row.Worked), signed(row.Delta))
		if row.Present {
			b.WriteString(mutedStyle.Render("  (still here)"))
		}
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render("  " + strings.Repeat("─", dayWidth+hoursWidth+9)))
	b.WriteString("\n")
	b.WriteString(totalStyle.Render(fmt.Sprintf("  %-*s%*s  %s",
		dayWidth, "Total", hoursWidth, timecalc.FormatHours(r.Total), timecalc.FormatSigned(r.Delta))))
	b.WriteString("\n")

	if r.ExpectedSoFar != nil {
		fmt.Fprintf(&b, "  %-*s%*s\n", dayWidth, "Expected so far", hoursWidth, timecalc.FormatHours(*r.ExpectedSoFar))
	}
	if r.Remaining != nil {
		line := fmt.Sprintf("  %-*s%*s", dayWidth, "Remaining", hoursWidth, timecalc.FormatHours(*r.Remaining))
		if r.RemainingPerDay != nil {
			line += fmt.Sprintf("  (%s per day)", timecalc.FormatHours(*r.RemainingPerDay))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
