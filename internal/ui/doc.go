// Package ui implements the terminal interface with Bubble Tea.
//
// The root Model owns three controllers (books, readers, reading session)
// and renders one of three views: the book catalog, the reader directory,
// or a book detail page with the reading-session flow. Controllers are safe
// for concurrent use, so every blocking operation runs inside a tea.Cmd and
// reports back with a refresh message; the Update loop then takes a fresh
// snapshot.
//
// Modal flows (add/edit forms, delete confirmation, first-run onboarding)
// capture the keyboard until dismissed.
package ui
