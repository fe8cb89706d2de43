package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ReviewFetcher defines the interface the reading-session controller needs.
// This interface is implemented by *Client and can be used for testing.
type ReviewFetcher interface {
	GetReview(ctx context.Context, readerID, bookID int64) (*Review, error)
	ListReactions(ctx context.Context, bookID int64) ([]Reaction, error)
	StartReading(ctx context.Context, readerID, bookID int64) error
	FinishReading(ctx context.Context, req FinishReadingRequest) error
}

// BookService defines the interface the books controller needs.
type BookService interface {
	ListBooks(ctx context.Context) ([]Book, error)
	CreateBook(ctx context.Context, payload BookPayload) (*Book, error)
	UpdateBook(ctx context.Context, id int64, payload BookPayload) (*Book, error)
	PatchBook(ctx context.Context, id int64, fields map[string]any) (*Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// ReaderService defines the interface the readers controller needs.
type ReaderService interface {
	ListReaders(ctx context.Context) ([]Reader, error)
	CreateReader(ctx context.Context, payload ReaderPayload) (*Reader, error)
	UpdateReader(ctx context.Context, id int64, payload ReaderPayload) (*Reader, error)
	DeleteReader(ctx context.Context, id int64) error
}

// ReaderDirectory defines the interface the identity resolver needs.
type ReaderDirectory interface {
	FindReaderByEmail(ctx context.Context, email string) (*Reader, error)
	CreateReader(ctx context.Context, payload ReaderPayload) (*Reader, error)
}

// Ensure Client satisfies its consumers at compile time.
var (
	_ ReviewFetcher   = (*Client)(nil)
	_ BookService     = (*Client)(nil)
	_ ReaderService   = (*Client)(nil)
	_ ReaderDirectory = (*Client)(nil)
)

// Client talks to the reading tracker HTTP API.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "bookjournal/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL, e.g.
// "http://localhost:3000/api". All endpoint paths are relative to it.
func NewClient(baseURL string) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	return &Client{
		baseURL: trimmed,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListBooks retrieves the full catalog.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook retrieves a single book by id.
func (c *Client) GetBook(ctx context.Context, id int64) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/books/%d", id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook adds a book to the catalog and returns the stored record.
func (c *Client) CreateBook(ctx context.Context, payload BookPayload) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodPost, "/books", payload, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook replaces all editable fields of a book.
func (c *Client) UpdateBook(ctx context.Context, id int64, payload BookPayload) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/books/%d", id), payload, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// PatchBook updates only the given fields of a book.
func (c *Client) PatchBook(ctx context.Context, id int64, fields map[string]any) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/books/%d", id), fields, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book from the catalog.
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), nil, nil)
}

// ListReaders retrieves all registered readers.
func (c *Client) ListReaders(ctx context.Context) ([]Reader, error) {
	var readers []Reader
	if err := c.do(ctx, http.MethodGet, "/readers", nil, &readers); err != nil {
		return nil, err
	}
	return readers, nil
}

// FindReaderByEmail looks up a reader by email address. A missing reader
// surfaces as a 404 StatusError; use IsNotFound to branch on it.
func (c *Client) FindReaderByEmail(ctx context.Context, email string) (*Reader, error) {
	values := url.Values{}
	values.Set("email", email)
	var reader Reader
	if err := c.do(ctx, http.MethodGet, "/readers/by-email?"+values.Encode(), nil, &reader); err != nil {
		return nil, err
	}
	return &reader, nil
}

// CreateReader registers a new reader and returns the stored record.
func (c *Client) CreateReader(ctx context.Context, payload ReaderPayload) (*Reader, error) {
	var reader Reader
	if err := c.do(ctx, http.MethodPost, "/readers", payload, &reader); err != nil {
		return nil, err
	}
	return &reader, nil
}

// UpdateReader replaces a reader's editable fields.
func (c *Client) UpdateReader(ctx context.Context, id int64, payload ReaderPayload) (*Reader, error) {
	var reader Reader
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/readers/%d", id), payload, &reader); err != nil {
		return nil, err
	}
	return &reader, nil
}

// DeleteReader removes a reader.
func (c *Client) DeleteReader(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/readers/%d", id), nil, nil)
}

// GetReview retrieves the single review the given reader holds for a book.
func (c *Client) GetReview(ctx context.Context, readerID, bookID int64) (*Review, error) {
	var review Review
	path := fmt.Sprintf("/reviews/readers/%d/books/%d", readerID, bookID)
	if err := c.do(ctx, http.MethodGet, path, nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReactions retrieves every reader's published reaction to a book.
func (c *Client) ListReactions(ctx context.Context, bookID int64) ([]Reaction, error) {
	var reactions []Reaction
	path := fmt.Sprintf("/reviews/books/%d/reactions", bookID)
	if err := c.do(ctx, http.MethodGet, path, nil, &reactions); err != nil {
		return nil, err
	}
	return reactions, nil
}

// StartReading records that the reader has started the book.
func (c *Client) StartReading(ctx context.Context, readerID, bookID int64) error {
	body := StartReadingRequest{ReaderID: readerID, BookID: bookID}
	return c.do(ctx, http.MethodPost, "/reviews/start-reading", body, nil)
}

// FinishReading records that the reader finished the book, publishing the
// rating, emoji, and comment as a reaction visible to other readers.
func (c *Client) FinishReading(ctx context.Context, req FinishReadingRequest) error {
	return c.do(ctx, http.MethodPost, "/reviews/finish-reading", req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
