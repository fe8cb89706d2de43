// Package controller holds the client's state machines: a generic resource
// controller driving every list screen, and a reading-session controller for
// the per-(reader, book) progress workflow.
//
// # Resource Controller
//
// Resource[T, F] owns one entity collection plus the add/edit form buffer
// and delete-confirmation state, parametrized by entity type T and form
// type F. Bindings (NewBooks, NewReaders) supply a Config wiring the
// controller to the API client and declaring how forms map to wire
// payloads.
//
// The controller never patches the collection locally. Every successful
// create, update, or delete refetches the whole list, keeping the in-memory
// collection consistent with the server without reconciliation logic. HTTP
// failures surface as an error string in the snapshot and leave prior state
// intact; there is no rollback because there was no optimistic mutation.
//
// # Concurrency
//
// Both controllers follow a producer/consumer snapshot pattern: operations
// run on background goroutines (Bubble Tea commands), the UI reads immutable
// snapshots. State access is guarded by an RWMutex held only around copies,
// never around network I/O.
//
// List fetches carry a generation token. A fetch issued while an older one
// is still in flight supersedes it; the stale response is discarded when it
// lands, so fast navigation cannot leave an outdated collection on screen.
// The same scheme keys the session controller's review and reaction reads.
//
// # Reading Session
//
// Session holds the current reader's review of one book and the book's full
// reaction list. The status machine is strictly forward:
//
//	Want to Read -> In Progress -> Finished
//
// SessionSnapshot.CanStartReading and CanFinishReading tell the UI which
// transitions to offer; from Finished only re-finishing (an idempotent
// overwrite of rating/emoji/comment) remains. Both transitions re-read the
// review from the service afterwards instead of assuming the move was
// accepted.
package controller
