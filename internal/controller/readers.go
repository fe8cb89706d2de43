package controller

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gilleon/book-journal/internal/api"
)

// ReaderForm buffers a reader's editable fields.
type ReaderForm struct {
	Name  string
	Email string
}

func (f ReaderForm) payload() api.ReaderPayload {
	return api.ReaderPayload{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
	}
}

// NewReaders builds the resource controller for the reader directory.
// Readers have no PATCH endpoint; edits always go out as full PUTs.
func NewReaders(service api.ReaderService, logger zerolog.Logger) *Resource[api.Reader, ReaderForm] {
	return NewResource(Config[api.Reader, ReaderForm]{
		Name: "readers",
		List: service.ListReaders,
		Create: func(ctx context.Context, form ReaderForm) (*api.Reader, error) {
			return service.CreateReader(ctx, form.payload())
		},
		Update: func(ctx context.Context, id int64, form ReaderForm) (*api.Reader, error) {
			return service.UpdateReader(ctx, id, form.payload())
		},
		Delete: service.DeleteReader,
		InitialForm: func() ReaderForm {
			return ReaderForm{}
		},
		FormOf: func(reader api.Reader) ReaderForm {
			return ReaderForm{Name: reader.Name, Email: reader.Email}
		},
		IDOf: func(reader api.Reader) int64 {
			return reader.ID
		},
		Logger: logger,
	})
}
