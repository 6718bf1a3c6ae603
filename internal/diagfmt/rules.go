package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"surgelint/internal/diag"
	"surgelint/internal/lint"
)

var (
	rulesHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	ruleIDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ruleOffStyle     = lipgloss.NewStyle().Faint(true)
	sevErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sevWarnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevInfoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

func renderSeverity(sev diag.Severity, colorize bool) string {
	s := strings.ToLower(sev.String())
	if !colorize {
		return s
	}
	switch sev {
	case diag.SevError:
		return sevErrorStyle.Render(s)
	case diag.SevWarning:
		return sevWarnStyle.Render(s)
	default:
		return sevInfoStyle.Render(s)
	}
}

// Rules prints the rule listing as an aligned table: ID, default
// severity, whether the rule is on by default, whether it offers an
// automatic fix, and a one-line summary.
func Rules(w io.Writer, registry *lint.Registry, colorize bool) {
	rules := registry.All()

	idWidth := len("RULE")
	for _, rule := range rules {
		if n := len(rule.Meta().ID); n > idWidth {
			idWidth = n
		}
	}

	header := fmt.Sprintf("%-*s  %-8s  %-7s  %-3s  %s", idWidth, "RULE", "SEVERITY", "DEFAULT", "FIX", "SUMMARY")
	if colorize {
		header = rulesHeaderStyle.Render(header)
	}
	fmt.Fprintln(w, header)

	for _, rule := range rules {
		meta := rule.Meta()

		id := fmt.Sprintf("%-*s", idWidth, meta.ID)
		if colorize {
			id = ruleIDStyle.Render(id)
		}
		state := "on"
		if !meta.DefaultOn {
			state = "off"
		}
		hasFix := "-"
		if meta.HasFix {
			hasFix = "yes"
		}

		// Severity is padded before styling; ANSI escapes would throw
		// off %-8s alignment.
		sev := fmt.Sprintf("%-8s", strings.ToLower(meta.Severity.String()))
		if colorize {
			sev = strings.Replace(sev, strings.ToLower(meta.Severity.String()),
				renderSeverity(meta.Severity, true), 1)
		}

		line := fmt.Sprintf("%s  %s  %-7s  %-3s  %s", id, sev, state, hasFix, meta.Summary)
		if colorize && !meta.DefaultOn {
			line = ruleOffStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}
