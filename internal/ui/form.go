package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gilleon/book-journal/internal/api"
	"github.com/gilleon/book-journal/internal/controller"
)

type formKind int

const (
	formBook formKind = iota
	formReader
)

// formState carries the textinput widgets for the add/edit modal. The
// controller owns the authoritative form buffer; these inputs are copied
// into it on submit.
type formState struct {
	active  bool
	kind    formKind
	editing bool
	method  controller.UpdateMethod
	labels  []string
	inputs  []textinput.Model
	focus   int
	err     string
}

func newBookFormState(form controller.BookForm, editing bool, method controller.UpdateMethod) formState {
	f := formState{
		active:  true,
		kind:    formBook,
		editing: editing,
		method:  method,
		labels:  []string{"Title", "Author", "Genre", "Published Year"},
	}
	values := []string{form.Title, form.Author, form.Genre, form.PublishedYear}
	f.inputs = makeInputs(values)
	f.inputs[0].Focus()
	return f
}

func newReaderFormState(form controller.ReaderForm, editing bool) formState {
	f := formState{
		active:  true,
		kind:    formReader,
		editing: editing,
		labels:  []string{"Name", "Email"},
	}
	f.inputs = makeInputs([]string{form.Name, form.Email})
	f.inputs[0].Focus()
	return f
}

func makeInputs(values []string) []textinput.Model {
	inputs := make([]textinput.Model, len(values))
	for i, value := range values {
		input := textinput.New()
		input.SetValue(value)
		input.CharLimit = 120
		inputs[i] = input
	}
	return inputs
}

func (f formState) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f formState) updateInputs(msg tea.Msg) (formState, tea.Cmd) {
	if !f.active || f.focus >= len(f.inputs) {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *formState) moveFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.form.kind == formBook {
			m.books.CloseModal()
			m.booksSnap = m.books.Snapshot()
		} else {
			m.readers.CloseModal()
			m.readersSnap = m.readers.Snapshot()
		}
		m.form = formState{}
		return m, nil

	case "tab", "down":
		m.form.moveFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.form.moveFocus(-1)
		return m, nil

	case "ctrl+p":
		if m.form.kind == formBook && m.form.editing {
			if m.form.method == controller.MethodPatch {
				m.form.method = controller.MethodPut
			} else {
				m.form.method = controller.MethodPatch
			}
			m.books.SetUpdateMethod(m.form.method)
		}
		return m, nil

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.updateInputs(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.kind == formBook {
		form := controller.BookForm{
			Title:         m.form.inputs[0].Value(),
			Author:        m.form.inputs[1].Value(),
			Genre:         m.form.inputs[2].Value(),
			PublishedYear: m.form.inputs[3].Value(),
		}
		if err := m.validateBookForm(form); err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.books.UpdateForm(func(f *controller.BookForm) { *f = form })
		return m, m.submitBooksCmd()
	}

	form := controller.ReaderForm{
		Name:  m.form.inputs[0].Value(),
		Email: m.form.inputs[1].Value(),
	}
	payload := api.ReaderPayload{Name: strings.TrimSpace(form.Name), Email: strings.TrimSpace(form.Email)}
	if err := m.validate.Validate(payload); err != nil {
		m.form.err = err.Error()
		return m, nil
	}
	m.readers.UpdateForm(func(f *controller.ReaderForm) { *f = form })
	return m, m.submitReadersCmd()
}

// validateBookForm gates submit on the same required-field affordances the
// service enforces.
func (m Model) validateBookForm(form controller.BookForm) error {
	yearText := strings.TrimSpace(form.PublishedYear)
	year, err := strconv.Atoi(yearText)
	if yearText != "" && err != nil {
		return fmt.Errorf("published year must be a number")
	}
	payload := api.BookPayload{
		Title:         strings.TrimSpace(form.Title),
		Author:        strings.TrimSpace(form.Author),
		Genre:         strings.TrimSpace(form.Genre),
		PublishedYear: year,
	}
	return m.validate.Validate(payload)
}

func (m Model) renderForm() string {
	var b strings.Builder

	title := "Add Book"
	if m.form.kind == formReader {
		title = "Add Reader"
	}
	if m.form.editing {
		title = strings.Replace(title, "Add", "Edit", 1)
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	for i, label := range m.form.labels {
		b.WriteString(m.styles.Label.Render(label))
		b.WriteString("\n")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}

	if m.form.kind == formBook && m.form.editing {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Update method: %s (ctrl+p to toggle)", m.form.method)))
		b.WriteString("\n")
	}

	if m.form.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.form.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter save · tab next field · esc cancel"))

	return m.overlay(m.styles.Modal.Render(b.String()))
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	isBooks := m.currentView == ViewBooks
	switch msg.String() {
	case "y", "enter":
		if isBooks {
			return m, m.confirmDeleteBooksCmd()
		}
		return m, m.confirmDeleteReadersCmd()

	case "n", "esc":
		if isBooks {
			m.books.CancelDelete()
			m.booksSnap = m.books.Snapshot()
		} else {
			m.readers.CancelDelete()
			m.readersSnap = m.readers.Snapshot()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) renderConfirmDelete() string {
	noun := "book"
	errText := m.booksSnap.Err
	if m.currentView == ViewReaders {
		noun = "reader"
		errText = m.readersSnap.Err
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Confirm Delete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Are you sure you want to delete this %s?", noun))
	b.WriteString("\n")
	if errText != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("y delete · n cancel"))
	return m.overlay(m.styles.Modal.Render(b.String()))
}
