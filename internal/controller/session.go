package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gilleon/book-journal/internal/api"
)

// Session tracks one (reader, book) reading workflow: the reader's own
// review plus every reader's reactions to the book.
//
// The reading status moves Want to Read -> In Progress -> Finished and never
// backwards. Re-finishing overwrites the published rating/emoji/comment; it
// is not a new event. After either transition the review is re-read from the
// service rather than assumed.
type Session struct {
	mu  sync.RWMutex
	api api.ReviewFetcher
	log zerolog.Logger

	readerID int64
	bookID   int64

	review        *api.Review
	reviewErr     string
	reviewLoading bool

	reactions        []api.Reaction
	reactionsErr     string
	reactionsLoading bool

	// Generations order the two read streams; responses for superseded
	// keys or reissued fetches are discarded.
	reviewGen    uint64
	reactionsGen uint64
}

// SessionSnapshot is an immutable view of a Session at a point in time.
type SessionSnapshot struct {
	ReaderID int64
	BookID   int64

	// Review is nil until a fetch succeeds; callers must check.
	Review        *api.Review
	ReviewErr     string
	ReviewLoading bool

	Reactions        []api.Reaction
	ReactionsErr     string
	ReactionsLoading bool
}

// Status derives the reading status, treating an absent review as not
// started.
func (s SessionSnapshot) Status() api.ReadingStatus {
	if s.Review == nil || s.Review.ReadingStatus == "" {
		return api.StatusWantToRead
	}
	return s.Review.ReadingStatus
}

// CanStartReading reports whether the start transition should be offered.
// The service treats a repeated start as a no-op, so the UI must not offer
// it once reading is under way.
func (s SessionSnapshot) CanStartReading() bool {
	return s.Status() == api.StatusWantToRead
}

// CanFinishReading reports whether the finish transition should be offered.
// Finishing stays available after Finished: it overwrites the reaction.
func (s SessionSnapshot) CanFinishReading() bool {
	status := s.Status()
	return status == api.StatusInProgress || status == api.StatusFinished
}

// NewSession builds a session controller over the given API surface.
func NewSession(fetcher api.ReviewFetcher, logger zerolog.Logger) *Session {
	return &Session{api: fetcher, log: logger}
}

// Load points the session at a (reader, book) pair and fetches the review
// and reaction list. A Load with different keys supersedes any in-flight
// reads from the previous pair.
func (s *Session) Load(ctx context.Context, readerID, bookID int64) {
	s.mu.Lock()
	s.readerID = readerID
	s.bookID = bookID
	s.review = nil
	s.reactions = nil
	s.reviewErr = ""
	s.reactionsErr = ""
	s.mu.Unlock()

	s.FetchReview(ctx)
	s.FetchReactions(ctx)
}

// FetchReview re-reads the reader's review for the current book. Errors are
// recorded for display but do not block transitions.
func (s *Session) FetchReview(ctx context.Context) {
	s.mu.Lock()
	s.reviewLoading = true
	s.reviewErr = ""
	s.reviewGen++
	gen := s.reviewGen
	readerID, bookID := s.readerID, s.bookID
	s.mu.Unlock()

	review, err := s.api.GetReview(ctx, readerID, bookID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.reviewGen {
		return
	}
	s.reviewLoading = false
	if err != nil {
		s.reviewErr = fmt.Sprintf("failed to fetch review: %v", err)
		s.log.Error().Err(err).Int64("reader", readerID).Int64("book", bookID).Msg("review fetch failed")
		return
	}
	s.review = review
}

// FetchReactions re-reads the book's reaction list.
func (s *Session) FetchReactions(ctx context.Context) {
	s.mu.Lock()
	s.reactionsLoading = true
	s.reactionsErr = ""
	s.reactionsGen++
	gen := s.reactionsGen
	bookID := s.bookID
	s.mu.Unlock()

	reactions, err := s.api.ListReactions(ctx, bookID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.reactionsGen {
		return
	}
	s.reactionsLoading = false
	if err != nil {
		s.reactionsErr = fmt.Sprintf("failed to fetch reactions: %v", err)
		s.log.Error().Err(err).Int64("book", bookID).Msg("reactions fetch failed")
		return
	}
	s.reactions = reactions
}

// StartReading posts the start-reading event and re-reads the review. The
// server's answer, not an assumed In Progress, becomes the new status.
func (s *Session) StartReading(ctx context.Context) error {
	s.mu.RLock()
	readerID, bookID := s.readerID, s.bookID
	s.mu.RUnlock()

	if err := s.api.StartReading(ctx, readerID, bookID); err != nil {
		s.log.Error().Err(err).Int64("reader", readerID).Int64("book", bookID).Msg("start reading failed")
		return err
	}
	s.FetchReview(ctx)
	return nil
}

// FinishReading posts the finish-reading event with the rating, emoji, and
// comment, then re-reads the review and the reaction list, since finishing
// also publishes a reaction other readers see. The reaction refresh is
// best-effort: a transient failure there is logged without blocking the
// transition's success.
func (s *Session) FinishReading(ctx context.Context, rating int, emoji, comment string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating %d out of range [1,5]", rating)
	}

	s.mu.RLock()
	readerID, bookID := s.readerID, s.bookID
	s.mu.RUnlock()

	req := api.FinishReadingRequest{
		ReaderID: readerID,
		BookID:   bookID,
		Rating:   rating,
		Emoji:    emoji,
		Comment:  comment,
	}
	if err := s.api.FinishReading(ctx, req); err != nil {
		s.log.Error().Err(err).Int64("reader", readerID).Int64("book", bookID).Msg("finish reading failed")
		return err
	}

	s.FetchReview(ctx)
	s.refreshReactionsQuiet(ctx)
	return nil
}

// refreshReactionsQuiet re-reads reactions without surfacing errors to the
// snapshot.
func (s *Session) refreshReactionsQuiet(ctx context.Context) {
	s.mu.Lock()
	s.reactionsGen++
	gen := s.reactionsGen
	bookID := s.bookID
	s.mu.Unlock()

	reactions, err := s.api.ListReactions(ctx, bookID)
	if err != nil {
		s.log.Warn().Err(err).Int64("book", bookID).Msg("post-finish reactions refresh failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.reactionsGen {
		return
	}
	s.reactions = reactions
}

// Snapshot returns a copy of the current state for rendering.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := SessionSnapshot{
		ReaderID:         s.readerID,
		BookID:           s.bookID,
		ReviewErr:        s.reviewErr,
		ReviewLoading:    s.reviewLoading,
		Reactions:        cloneItems(s.reactions),
		ReactionsErr:     s.reactionsErr,
		ReactionsLoading: s.reactionsLoading,
	}
	if s.review != nil {
		review := *s.review
		snap.Review = &review
	}
	return snap
}
