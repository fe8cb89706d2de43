// Package api provides an HTTP client for the reading tracker service.
//
// # Overview
//
// This package defines the API client for communicating with the remote
// reading tracker REST service. It handles HTTP communication, JSON
// serialization, and type-safe representation of books, readers, reviews,
// and reactions.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the service's API schema
//   - errors.go: Typed failures for non-2xx responses
//
// # Client Usage
//
// Create a client using the base URL from configuration:
//
//	client, err := api.NewClient("http://localhost:3000/api")
//	if err != nil {
//		log.Fatal().Err(err).Msg("create api client")
//	}
//
//	books, err := client.ListBooks(ctx)
//	review, err := client.GetReview(ctx, readerID, bookID)
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json, and Content-Type for bodies
//   - Fail with *StatusError on any non-2xx response, before decoding,
//     so callers never observe partially-parsed data
//
// The by-email reader lookup returns a 404 StatusError when the reader does
// not exist; IsNotFound lets the identity resolver treat that as a normal
// branch rather than an error.
//
// # Interfaces
//
// ReviewFetcher and ReaderDirectory expose the subsets of Client consumed by
// the session controller and the identity resolver, so both can be tested
// against fakes without a live service.
package api
