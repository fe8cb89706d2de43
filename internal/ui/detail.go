package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gilleon/book-journal/internal/api"
	"github.com/gilleon/book-journal/internal/views"
)

// finishState holds the rating and comment inputs for the finish-reading
// flow, plus transient status text from the last transition.
type finishState struct {
	note     string
	err      string
	rating   textinput.Model
	comment  textinput.Model
	emojiIdx int
	focus    int
}

func newFinishState() finishState {
	rating := textinput.New()
	rating.Placeholder = "1-5"
	rating.CharLimit = 1
	rating.Width = 4
	rating.Focus()

	comment := textinput.New()
	comment.Placeholder = "What did you think?"
	comment.CharLimit = 300

	return finishState{rating: rating, comment: comment}
}

func (f finishState) updateInputs(msg tea.Msg) (finishState, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.rating, cmd = f.rating.Update(msg)
	} else {
		f.comment, cmd = f.comment.Update(msg)
	}
	return f, cmd
}

func (f *finishState) moveFocus() {
	if f.focus == 0 {
		f.rating.Blur()
		f.comment.Focus()
		f.focus = 1
	} else {
		f.comment.Blur()
		f.rating.Focus()
		f.focus = 0
	}
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.sessionSnap

	switch msg.String() {
	case "s":
		if snap.CanStartReading() {
			m.finish.note = ""
			m.finish.err = ""
			return m, m.startReadingCmd()
		}

	case "tab", "shift+tab":
		if snap.CanFinishReading() {
			m.finish.moveFocus()
		}
		return m, nil

	case "left", "right":
		if snap.CanFinishReading() {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.finish.emojiIdx = (m.finish.emojiIdx + delta + len(api.Emojis)) % len(api.Emojis)
		}
		return m, nil

	case "enter":
		if !snap.CanFinishReading() {
			return m, nil
		}
		rating, err := strconv.Atoi(strings.TrimSpace(m.finish.rating.Value()))
		if err != nil || rating < 1 || rating > 5 {
			m.finish.err = "rating must be between 1 and 5"
			return m, nil
		}
		m.finish.note = ""
		m.finish.err = ""
		emoji := api.Emojis[m.finish.emojiIdx]
		return m, m.finishReadingCmd(rating, emoji, m.finish.comment.Value())
	}

	var cmd tea.Cmd
	m.finish, cmd = m.finish.updateInputs(msg)
	return m, cmd
}

func (m Model) renderDetail() string {
	var b strings.Builder
	snap := m.sessionSnap
	book := m.detailBook

	b.WriteString(m.styles.Title.Render(book.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s · %s · %d", book.Author, book.Genre, book.PublishedYear)))
	b.WriteString("\n\n")

	if snap.ReviewLoading {
		b.WriteString(m.styles.Muted.Render("Loading your review..."))
		b.WriteString("\n")
	} else {
		status := snap.Status()
		b.WriteString(m.styles.Label.Render("Your status: "))
		b.WriteString(m.styles.statusStyle(status).Render(string(status)))
		b.WriteString("\n")
		if snap.ReviewErr != "" {
			b.WriteString(m.styles.Error.Render(snap.ReviewErr))
			b.WriteString("\n")
		}
		if snap.Review != nil && snap.Review.Rating != nil {
			b.WriteString(fmt.Sprintf("Your rating: %d/5 %s\n", *snap.Review.Rating, snap.Review.Emoji))
			if snap.Review.Comment != "" {
				b.WriteString(fmt.Sprintf("Your comment: %s\n", snap.Review.Comment))
			}
		}
	}
	b.WriteString("\n")

	switch {
	case snap.CanStartReading():
		b.WriteString(m.styles.Accent.Render("Press s to start reading."))
		b.WriteString("\n")
	case snap.CanFinishReading():
		verb := "Finish"
		if snap.Status() == api.StatusFinished {
			verb = "Update"
		}
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("%s your review", verb)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Rating: %s  Reaction: %s (left/right)\n", m.finish.rating.View(), api.Emojis[m.finish.emojiIdx]))
		b.WriteString(fmt.Sprintf("Comment: %s\n", m.finish.comment.View()))
		b.WriteString(m.styles.Help.Render("enter submit · tab switch field"))
		b.WriteString("\n")
	}

	if m.finish.note != "" {
		b.WriteString(m.styles.Success.Render(m.finish.note))
		b.WriteString("\n")
	}
	if m.finish.err != "" {
		b.WriteString(m.styles.Error.Render(m.finish.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderReactions())
	return b.String()
}

func (m Model) renderReactions() string {
	var b strings.Builder
	snap := m.sessionSnap

	b.WriteString(m.styles.Header.Render("What other readers thought"))
	b.WriteString("\n")

	if snap.ReactionsLoading {
		b.WriteString(m.styles.Muted.Render("Loading reactions..."))
		b.WriteString("\n")
		return b.String()
	}
	if snap.ReactionsErr != "" {
		b.WriteString(m.styles.Error.Render(snap.ReactionsErr))
		b.WriteString("\n")
		return b.String()
	}
	if len(snap.Reactions) == 0 {
		b.WriteString(m.styles.Muted.Render("No reactions yet."))
		b.WriteString("\n")
		return b.String()
	}

	totals := views.AggregateReactions(snap.Reactions)
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf(
		"%d finished · %d in progress · %d want to read · avg rating %.1f",
		totals.Finished, totals.InProgress, totals.WantToRead, totals.Average,
	)))
	b.WriteString("\n\n")

	for _, reaction := range snap.Reactions {
		line := fmt.Sprintf("%-20s %s", truncate(reaction.ReaderName(), 20), m.styles.statusStyle(reaction.ReadingStatus).Render(string(reaction.ReadingStatus)))
		if reaction.Rating > 0 {
			line += fmt.Sprintf("  %d/5 %s", reaction.Rating, reaction.Emoji)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if reaction.Comment != "" {
			b.WriteString(m.styles.Muted.Render("  " + truncate(reaction.Comment, 70)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
