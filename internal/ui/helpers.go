package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens s to at most w cells, ellipsized.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(runes[:w-1]) + "…"
}

// overlay centers content in the terminal when dimensions are known.
func (m Model) overlay(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.currentView {
	case ViewReaders:
		b.WriteString(m.renderReaders())
	case ViewDetail:
		b.WriteString(m.renderDetail())
	default:
		b.WriteString(m.renderBooks())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderTabs() string {
	title := m.styles.Title.Render("Book Journal")

	bookTab := m.styles.Tab.Render("[1] Books")
	readerTab := m.styles.Tab.Render("[2] Readers")
	switch m.currentView {
	case ViewBooks:
		bookTab = m.styles.TabActive.Render("[1] Books")
	case ViewReaders:
		readerTab = m.styles.TabActive.Render("[2] Readers")
	}

	who := ""
	if m.reader != nil {
		who = m.styles.Muted.Render("  " + m.reader.Name)
	}
	return title + "  " + bookTab + readerTab + who
}

func (m Model) renderHelp() string {
	switch m.currentView {
	case ViewDetail:
		return m.styles.Help.Render("R refresh · esc back · q quit")
	case ViewReaders:
		return m.styles.Help.Render("a add · e edit · d delete · R refresh · L log out · q quit")
	default:
		return m.styles.Help.Render("enter open · a add · e edit · d delete · f filter · R refresh · L log out · q quit")
	}
}
