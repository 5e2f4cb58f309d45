package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"ptop/internal/dispatch"
	"ptop/internal/model"
)

func (m *Model) View() string {
	snap := m.store.Current()

	header := titleStyle.Render("ptop") + "  " +
		subtleStyle.Render(snap.Taken.Format("Mon Jan 2 15:04:05"))
	summary := m.renderSummary(snap)

	var body string
	if m.view == viewDetail {
		body = m.renderDetail(snap)
	} else {
		body = m.renderTable(header, summary)
	}

	sections := []string{header, summary, body}
	if m.view == viewKillConfirm {
		sections = append(sections, m.renderConfirm())
	}
	if line := m.renderSearchLine(); line != "" {
		sections = append(sections, line)
	}
	if line := m.renderStatusLine(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, helpStyle.Render(m.helpLine()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderSummary(snap *model.Snapshot) string {
	s := snap.Summary

	cpuCard := card("CPU",
		fmt.Sprintf("%s  load %.2f %.2f %.2f",
			gaugeBar(s.CPUTotal, 24), s.Load1, s.Load5, s.Load15))

	memCard := card("Memory",
		fmt.Sprintf("%s  swap %3.0f%%",
			gaugeBar(pct(s.MemUsed, s.MemTotal), 24),
			pct(s.SwapUsed, s.SwapTotal)))

	histCard := card("CPU history", sparkline(m.cpuHistory, 28))

	sysCard := card("System",
		fmt.Sprintf("up %s | %d procs",
			formatUptime(int64(s.Uptime.Seconds())), len(snap.Processes)))

	return lipgloss.JoinHorizontal(lipgloss.Top, cpuCard, memCard, histCard, sysCard)
}

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}

func (m *Model) renderTable(header, summary string) string {
	var b strings.Builder

	cols := fmt.Sprintf("%-8s %-22s %-12s %6s %9s %9s %9s",
		"PID", "NAME", "USER", "CPU%", "MEM", "DISK R", "DISK W")
	b.WriteString(headerStyle.Render(cols))
	b.WriteByte('\n')

	// Rows below: header line + summary block + the column header above.
	m.tableTop = lipgloss.Height(header) + lipgloss.Height(summary) + 1

	if len(m.filtered) == 0 {
		if m.searchInput.Value() != "" {
			b.WriteString(emptyStyle.Render(
				fmt.Sprintf("no processes match %q", m.searchInput.Value())))
		} else {
			b.WriteString(emptyStyle.Render("no processes sampled yet"))
		}
		return b.String()
	}

	end := m.scroll + m.visibleRows()
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for i := m.scroll; i < end; i++ {
		p := m.filtered[i]
		line := fmt.Sprintf("%-8d %-22s %-12s %6.1f %9s %9s %9s",
			p.PID,
			truncate(p.Name, 22),
			truncate(orDash(p.User), 12),
			p.CPUPercent,
			formatBytes(p.MemoryRSS),
			formatBytes(p.DiskRead),
			formatBytes(p.DiskWrite))

		if p.PID == m.selectedPID {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(normalStyle.Render(line))
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *Model) renderDetail(snap *model.Snapshot) string {
	rec := snap.Find(m.selectedPID)
	if rec == nil {
		return emptyStyle.Render("no process selected")
	}

	row := func(label, value string) string {
		return detailLabelStyle.Render(label) + normalStyle.Render(value)
	}

	started := "-"
	running := "-"
	if !rec.StartTime.IsZero() {
		started = rec.StartTime.Format("2006-01-02 15:04:05")
		running = formatUptime(int64(time.Since(rec.StartTime).Seconds()))
	}

	lines := []string{
		confirmTitleStyle.Render(fmt.Sprintf("Process %d — %s", rec.PID, rec.Name)),
		"",
		row("User", orDash(rec.User)),
		row("Executable", orDash(rec.Executable)),
		row("Command", orDash(truncate(rec.Cmdline, m.width-20))),
		row("Workdir", orDash(rec.Cwd)),
		row("Started", started),
		row("Running", running),
		row("CPU", fmt.Sprintf("%.1f%%", rec.CPUPercent)),
		row("Memory", formatBytes(rec.MemoryRSS)),
		row("Disk read", formatBytes(rec.DiskRead)),
		row("Disk write", formatBytes(rec.DiskWrite)),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderConfirm() string {
	sigLine := func(sig dispatch.SignalKind, key, note string) string {
		line := fmt.Sprintf("[%s] %s %s", key, sig, note)
		if m.pendingSig != nil && *m.pendingSig == sig {
			return signalChosenStyle.Render("→ " + line)
		}
		return normalStyle.Render("  " + line)
	}

	if m.manualKill {
		lines := []string{
			confirmTitleStyle.Render("Kill by PID"),
			m.pidInput.View(),
			sigLine(dispatch.SignalTerm, "↑/↓", "(graceful)"),
			sigLine(dispatch.SignalKill, "↑/↓", "(force)"),
			helpStyle.Render("enter confirm • esc cancel"),
		}
		return confirmStyle.Render(strings.Join(lines, "\n"))
	}

	target := fmt.Sprintf("process %d", m.selectedPID)
	if rec := m.store.Current().Find(m.selectedPID); rec != nil {
		target = fmt.Sprintf("%s (pid %d)", rec.Name, rec.PID)
	}
	lines := []string{
		confirmTitleStyle.Render("Kill " + target),
		sigLine(dispatch.SignalTerm, "1", "(graceful)"),
		sigLine(dispatch.SignalKill, "2", "(force)"),
		helpStyle.Render("enter confirm • esc cancel"),
	}
	return confirmStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSearchLine() string {
	if m.view == viewSearch {
		return searchStyle.Render(m.searchInput.View())
	}
	if term := m.searchInput.Value(); term != "" {
		return filterStyle.Render("filter: " + term)
	}
	return ""
}

func (m *Model) renderStatusLine() string {
	if m.status == "" || time.Since(m.statusTime) >= statusDuration {
		return ""
	}
	if m.statusErr {
		return statusErrStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func (m *Model) helpLine() string {
	switch m.view {
	case viewSearch:
		return "type to filter • enter/esc close"
	case viewDetail:
		return "d kill • esc back • q quit"
	case viewKillConfirm:
		if m.manualKill {
			return "digits enter PID • ↑/↓ signal • enter confirm • esc cancel"
		}
		return "1 SIGTERM • 2 SIGKILL • enter confirm • esc cancel"
	default:
		return "↑/k ↓/j move • enter details • d kill • p kill by pid • / search • r refresh • q quit"
	}
}

func (m *Model) visibleRows() int {
	rows := m.height - 13
	if rows < 5 {
		rows = 5
	}
	return rows
}
