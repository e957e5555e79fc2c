package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recruitdesk/internal/model"
)

func kv(k, v string) string {
	return fmt.Sprintf("%s: %s", k, v)
}

func listWindow(total, cursor, maxRows int) (int, int) {
	if total <= maxRows {
		return 0, total
	}
	half := maxRows / 2
	start := cursor - half
	if start < 0 {
		start = 0
	}
	end := start + maxRows
	if end > total {
		end = total
		start = end - maxRows
	}
	return start, end
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}

func wrapOrTrim(s string, width int) string {
	if width <= 0 {
		return s
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncateRunes(s, width)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func defaultIfEmpty(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// formatSalary renders "USD 40,000 - USD 75,000 /yr" style lines from the
// flat salary fields.
func formatSalary(j model.Job) string {
	if j.SalaryType == model.SalaryTypeStipend {
		if j.StipendAmount != nil {
			return fmt.Sprintf("%s %s stipend", j.SalaryCurrency, groupThousands(*j.StipendAmount))
		}
		return "stipend"
	}
	suffix := "/yr"
	switch j.SalaryType {
	case model.SalaryTypeMonthly:
		suffix = "/mo"
	case model.SalaryTypeHourly:
		suffix = "/hr"
	}
	return fmt.Sprintf("%s %s - %s %s %s",
		j.SalaryCurrency, groupThousands(j.SalaryMin),
		j.SalaryCurrency, groupThousands(j.SalaryMax), suffix)
}

func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// humanizeEnum turns wire enum values like "full_time" into "full time".
func humanizeEnum(v string) string {
	return strings.ReplaceAll(v, "_", " ")
}
