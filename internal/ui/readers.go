package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleReadersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	readers := m.readersSnap.Items

	switch msg.String() {
	case "up", "k":
		if m.readerCursor > 0 {
			m.readerCursor--
		}
		return m, nil

	case "down", "j":
		if m.readerCursor < len(readers)-1 {
			m.readerCursor++
		}
		return m, nil

	case "a":
		m.readers.OpenAdd()
		m.readersSnap = m.readers.Snapshot()
		m.form = newReaderFormState(m.readersSnap.Form, false)
		return m, m.form.focusCmd()

	case "e":
		if m.readerCursor < len(readers) {
			m.readers.OpenEdit(readers[m.readerCursor])
			m.readersSnap = m.readers.Snapshot()
			m.form = newReaderFormState(m.readersSnap.Form, true)
			return m, m.form.focusCmd()
		}
		return m, nil

	case "d":
		if m.readerCursor < len(readers) {
			m.readers.RequestDelete(readers[m.readerCursor].ID)
			m.readersSnap = m.readers.Snapshot()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) renderReaders() string {
	var b strings.Builder

	if m.readersSnap.Loading {
		b.WriteString(m.styles.Muted.Render("Loading readers..."))
		return b.String()
	}
	if m.readersSnap.Err != "" {
		b.WriteString(m.styles.Error.Render(m.readersSnap.Err))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Press R to retry."))
		return b.String()
	}

	readers := m.readersSnap.Items
	if len(readers) == 0 {
		b.WriteString(m.styles.Muted.Render("No readers yet. Press a to add one."))
		return b.String()
	}

	nameW := 28
	header := fmt.Sprintf("%-*s  %s", nameW, "Name", "Email")
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")

	for i, reader := range readers {
		row := fmt.Sprintf("%-*s  %s", nameW, truncate(reader.Name, nameW), reader.Email)
		style := m.styles.Row
		if i == m.readerCursor {
			style = m.styles.RowSelected
		}
		if m.reader != nil && reader.ID == m.reader.ID {
			row += "  (you)"
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}
