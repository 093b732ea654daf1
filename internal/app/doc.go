// Package app provides the application service layer.
//
// Sits between HTTP handlers and the record repository. Depends on the
// domain interface, not the in-memory implementation.
package app
