package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gilleon/book-journal/internal/api"
	"github.com/gilleon/book-journal/internal/views"
)

// visibleBooks applies the genre filter to the latest snapshot.
func (m Model) visibleBooks() []api.Book {
	return views.FilterByGenre(m.booksSnap.Items, m.genreFilter)
}

func (m Model) handleBooksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	books := m.visibleBooks()

	switch msg.String() {
	case "up", "k":
		if m.bookCursor > 0 {
			m.bookCursor--
		}
		return m, nil

	case "down", "j":
		if m.bookCursor < len(books)-1 {
			m.bookCursor++
		}
		return m, nil

	case "f":
		m.cycleGenreFilter()
		return m, nil

	case "a":
		m.books.OpenAdd()
		m.booksSnap = m.books.Snapshot()
		m.form = newBookFormState(m.booksSnap.Form, false, m.booksSnap.UpdateMethod)
		return m, m.form.focusCmd()

	case "e":
		if m.bookCursor < len(books) {
			m.books.OpenEdit(books[m.bookCursor])
			m.booksSnap = m.books.Snapshot()
			m.form = newBookFormState(m.booksSnap.Form, true, m.booksSnap.UpdateMethod)
			return m, m.form.focusCmd()
		}
		return m, nil

	case "d":
		if m.bookCursor < len(books) {
			m.books.RequestDelete(books[m.bookCursor].ID)
			m.booksSnap = m.books.Snapshot()
		}
		return m, nil

	case "enter":
		if m.bookCursor < len(books) && m.reader != nil {
			m.detailBook = books[m.bookCursor]
			m.currentView = ViewDetail
			m.finish = newFinishState()
			return m, m.loadSessionCmd(m.reader.ID, m.detailBook.ID)
		}
		return m, nil
	}
	return m, nil
}

// cycleGenreFilter steps through no-filter plus each distinct genre.
func (m *Model) cycleGenreFilter() {
	genres := views.DistinctGenres(m.booksSnap.Items)
	if len(genres) == 0 {
		m.genreFilter = ""
		return
	}
	if m.genreFilter == "" {
		m.genreFilter = genres[0]
		m.bookCursor = 0
		return
	}
	for i, genre := range genres {
		if genre == m.genreFilter {
			if i+1 < len(genres) {
				m.genreFilter = genres[i+1]
			} else {
				m.genreFilter = ""
			}
			m.bookCursor = 0
			return
		}
	}
	m.genreFilter = ""
	m.bookCursor = 0
}

func (m Model) renderBooks() string {
	var b strings.Builder

	filter := "all genres"
	if m.genreFilter != "" {
		filter = m.genreFilter
	}
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Filter: %s (f to cycle)", filter)))
	b.WriteString("\n\n")

	if m.booksSnap.Loading {
		b.WriteString(m.styles.Muted.Render("Loading books..."))
		return b.String()
	}
	if m.booksSnap.Err != "" {
		b.WriteString(m.styles.Error.Render(m.booksSnap.Err))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Press R to retry."))
		return b.String()
	}

	books := m.visibleBooks()
	if len(books) == 0 {
		b.WriteString(m.styles.Muted.Render("No books yet. Press a to add one."))
		return b.String()
	}

	titleW, authorW := 32, 24
	header := fmt.Sprintf("%-*s  %-*s  %-14s  %5s", titleW, "Title", authorW, "Author", "Genre", "Year")
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")

	for i, book := range books {
		row := fmt.Sprintf("%-*s  %-*s  %-14s  %5d",
			titleW, truncate(book.Title, titleW),
			authorW, truncate(book.Author, authorW),
			truncate(book.Genre, 14),
			book.PublishedYear,
		)
		style := m.styles.Row
		if i == m.bookCursor {
			style = m.styles.RowSelected
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}
