// Package views contains pure projection helpers that reduce API snapshots
// into display-ready values. Every function here is referentially
// transparent: no I/O, no shared state, inputs are never mutated.
package views

import (
	"math"

	"github.com/gilleon/book-journal/internal/api"
)

// FilterByGenre returns the books matching genre exactly. An empty genre
// means no filter and returns the input unchanged.
func FilterByGenre(books []api.Book, genre string) []api.Book {
	if genre == "" {
		return books
	}
	var filtered []api.Book
	for _, book := range books {
		if book.Genre == genre {
			filtered = append(filtered, book)
		}
	}
	return filtered
}

// DistinctGenres returns the genres present in books, first-seen order.
func DistinctGenres(books []api.Book) []string {
	seen := make(map[string]bool, len(books))
	var genres []string
	for _, book := range books {
		if book.Genre == "" || seen[book.Genre] {
			continue
		}
		seen[book.Genre] = true
		genres = append(genres, book.Genre)
	}
	return genres
}

// Totals aggregates a book's reactions into per-status counts and an average
// rating. Average covers only reactions carrying a rating above zero and is
// rounded to one decimal; it is 0 (not NaN) when nothing is rated.
type Totals struct {
	Finished   int
	InProgress int
	WantToRead int
	Average    float64
}

// AggregateReactions buckets reactions by reading status and averages the
// ratings.
func AggregateReactions(reactions []api.Reaction) Totals {
	var totals Totals
	sum, rated := 0, 0
	for _, reaction := range reactions {
		switch reaction.ReadingStatus {
		case api.StatusFinished:
			totals.Finished++
		case api.StatusInProgress:
			totals.InProgress++
		case api.StatusWantToRead:
			totals.WantToRead++
		}
		if reaction.Rating > 0 {
			sum += reaction.Rating
			rated++
		}
	}
	if rated > 0 {
		totals.Average = math.Round(float64(sum)/float64(rated)*10) / 10
	}
	return totals
}
