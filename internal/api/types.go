package api

// ReadingStatus is the wire value the service tracks per (reader, book).
type ReadingStatus string

const (
	StatusWantToRead ReadingStatus = "Want to Read"
	StatusInProgress ReadingStatus = "In Progress"
	StatusFinished   ReadingStatus = "Finished"
)

// Emojis is the fixed set of reactions the service accepts.
var Emojis = []string{"😍", "😴", "🤯"}

// Book describes a catalog entry.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedYear int    `json:"published_year"`
}

// Reader identifies a person using the journal.
type Reader struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Review is the single record the service keeps per (reader, book). The id is
// assigned by the remote store and never mutated locally.
type Review struct {
	ID            int64         `json:"id"`
	ReaderID      int64         `json:"reader_id"`
	BookID        int64         `json:"book_id"`
	ReadingStatus ReadingStatus `json:"reading_status"`
	Rating        *int          `json:"rating,omitempty"`
	Emoji         string        `json:"emoji,omitempty"`
	Comment       string        `json:"comment,omitempty"`
	ReaderName    string        `json:"reader_name,omitempty"`
	Name          string        `json:"name,omitempty"`
}

// ReviewerName returns the display name attached to the review, falling back
// across the two fields the service has used for it.
func (r Review) ReviewerName() string {
	if r.ReaderName != "" {
		return r.ReaderName
	}
	if r.Name != "" {
		return r.Name
	}
	return "You"
}

// Reaction is a denormalized, read-only view of another reader's review of a
// book. Reactions are never created or mutated by this client directly.
type Reaction struct {
	Name          string        `json:"name"`
	Rating        int           `json:"rating"`
	Emoji         string        `json:"emoji"`
	Comment       string        `json:"comment"`
	ReadingStatus ReadingStatus `json:"reading_status"`
}

// ReaderName returns the reaction's display name, "Anonymous" when missing.
func (r Reaction) ReaderName() string {
	if r.Name == "" {
		return "Anonymous"
	}
	return r.Name
}

// BookPayload is the request body for creating or fully updating a book.
type BookPayload struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	Genre         string `json:"genre" validate:"required"`
	PublishedYear int    `json:"published_year" validate:"required"`
}

// ReaderPayload is the request body for creating or updating a reader.
type ReaderPayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// StartReadingRequest is the body for POST /reviews/start-reading.
type StartReadingRequest struct {
	ReaderID int64 `json:"readerId"`
	BookID   int64 `json:"bookId"`
}

// FinishReadingRequest is the body for POST /reviews/finish-reading.
type FinishReadingRequest struct {
	ReaderID int64  `json:"readerId"`
	BookID   int64  `json:"bookId"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Emoji    string `json:"emoji"`
	Comment  string `json:"comment"`
}
