// Package memory provides the process-local stores: the record collection
// and a gorilla/sessions Store keyed by an opaque cookie id.
// Nothing here survives a restart.
package memory
