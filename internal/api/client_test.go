package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL + "/api")
	require.NoError(t, err)
	return client
}

func TestNewClient_RejectsBadBaseURLs(t *testing.T) {
	_, err := NewClient("  ")
	assert.Error(t, err)

	_, err = NewClient("localhost:3000")
	assert.Error(t, err, "missing scheme should be rejected")

	client, err := NewClient("http://localhost:3000/api/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/api", client.baseURL)
}

func TestListBooks_DecodesCollection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`[
			{"id":1,"title":"Dune","author":"Frank Herbert","genre":"Sci-Fi","published_year":1965},
			{"id":2,"title":"Emma","author":"Jane Austen","genre":"Romance","published_year":1815}
		]`))
	})

	books, err := client.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, int64(1), books[0].ID)
	assert.Equal(t, "Emma", books[1].Title)
	assert.Equal(t, 1815, books[1].PublishedYear)
}

func TestCreateBook_SendsJSONBody(t *testing.T) {
	var got BookPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":9,"title":"Dune","author":"Frank Herbert","genre":"Sci-Fi","published_year":1965}`))
	})

	book, err := client.CreateBook(context.Background(), BookPayload{
		Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", PublishedYear: 1965,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), book.ID)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, 1965, got.PublishedYear)
}

func TestPatchBook_SendsOnlyGivenFields(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/books/5", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":5,"title":"New Title"}`))
	})

	book, err := client.PatchBook(context.Background(), 5, map[string]any{"title": "New Title"})
	require.NoError(t, err)
	assert.Equal(t, "New Title", book.Title)
	assert.Equal(t, map[string]any{"title": "New Title"}, got)
}

func TestDo_NonOKBecomesStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.ListBooks(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Equal(t, "Internal Server Error", statusErr.StatusText)
	assert.False(t, IsNotFound(err))
}

func TestFindReaderByEmail_NotFoundClassifies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/readers/by-email", r.URL.Path)
		if r.URL.Query().Get("email") == "ada@example.com" {
			_, _ = w.Write([]byte(`{"id":7,"name":"Ada","email":"ada@example.com"}`))
			return
		}
		http.NotFound(w, r)
	})

	reader, err := client.FindReaderByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), reader.ID)

	_, err = client.FindReaderByEmail(context.Background(), "nobody@example.com")
	assert.True(t, IsNotFound(err))
}

func TestStartReading_PostsCamelCaseIDs(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reviews/start-reading", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.StartReading(context.Background(), 7, 3))
	assert.Equal(t, float64(7), got["readerId"])
	assert.Equal(t, float64(3), got["bookId"])
}

func TestFinishReading_PostsAllFields(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reviews/finish-reading", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := client.FinishReading(context.Background(), FinishReadingRequest{
		ReaderID: 7, BookID: 3, Rating: 4, Emoji: "😍", Comment: "Loved it",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(4), got["rating"])
	assert.Equal(t, "😍", got["emoji"])
	assert.Equal(t, "Loved it", got["comment"])
}

func TestDeleteBook_AcceptsNoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/books/2", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteBook(context.Background(), 2))
}

func TestGetReview_DecodesOptionalFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reviews/readers/7/books/3", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":11,"reader_id":7,"book_id":3,"reading_status":"In Progress"}`))
	})

	review, err := client.GetReview(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, review.ReadingStatus)
	assert.Nil(t, review.Rating)
	assert.Equal(t, "You", review.ReviewerName())
}
