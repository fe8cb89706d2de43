package controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gilleon/book-journal/internal/api"
)

// BookForm buffers a book's editable fields while the add/edit modal is
// open. PublishedYear stays text until submit so partial input never
// round-trips through a failed number parse.
type BookForm struct {
	Title         string
	Author        string
	Genre         string
	PublishedYear string
}

func (f BookForm) payload() (api.BookPayload, error) {
	year, err := strconv.Atoi(strings.TrimSpace(f.PublishedYear))
	if err != nil {
		return api.BookPayload{}, fmt.Errorf("published year %q is not a number", f.PublishedYear)
	}
	return api.BookPayload{
		Title:         strings.TrimSpace(f.Title),
		Author:        strings.TrimSpace(f.Author),
		Genre:         strings.TrimSpace(f.Genre),
		PublishedYear: year,
	}, nil
}

// changedFields diffs two form states into a partial wire payload for PATCH.
func (f BookForm) changedFields(prev BookForm) (map[string]any, error) {
	fields := make(map[string]any)
	if f.Title != prev.Title {
		fields["title"] = strings.TrimSpace(f.Title)
	}
	if f.Author != prev.Author {
		fields["author"] = strings.TrimSpace(f.Author)
	}
	if f.Genre != prev.Genre {
		fields["genre"] = strings.TrimSpace(f.Genre)
	}
	if f.PublishedYear != prev.PublishedYear {
		year, err := strconv.Atoi(strings.TrimSpace(f.PublishedYear))
		if err != nil {
			return nil, fmt.Errorf("published year %q is not a number", f.PublishedYear)
		}
		fields["published_year"] = year
	}
	return fields, nil
}

// NewBooks builds the resource controller for the book catalog.
func NewBooks(service api.BookService, logger zerolog.Logger) *Resource[api.Book, BookForm] {
	return NewResource(Config[api.Book, BookForm]{
		Name: "books",
		List: service.ListBooks,
		Create: func(ctx context.Context, form BookForm) (*api.Book, error) {
			payload, err := form.payload()
			if err != nil {
				return nil, err
			}
			return service.CreateBook(ctx, payload)
		},
		Update: func(ctx context.Context, id int64, form BookForm) (*api.Book, error) {
			payload, err := form.payload()
			if err != nil {
				return nil, err
			}
			return service.UpdateBook(ctx, id, payload)
		},
		Patch: func(ctx context.Context, id int64, prev, next BookForm) (*api.Book, error) {
			fields, err := next.changedFields(prev)
			if err != nil {
				return nil, err
			}
			if len(fields) == 0 {
				// Nothing changed; skip the round trip.
				return nil, nil
			}
			return service.PatchBook(ctx, id, fields)
		},
		Delete: service.DeleteBook,
		InitialForm: func() BookForm {
			return BookForm{}
		},
		FormOf: func(book api.Book) BookForm {
			return BookForm{
				Title:         book.Title,
				Author:        book.Author,
				Genre:         book.Genre,
				PublishedYear: strconv.Itoa(book.PublishedYear),
			}
		},
		IDOf: func(book api.Book) int64 {
			return book.ID
		},
		Logger: logger,
	})
}
