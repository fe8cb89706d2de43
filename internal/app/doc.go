// Package app wires configuration, logging, the API client, identity
// resolution, and the controllers together and hands them to the UI.
package app
