// Package domain holds the record and visitor types shared by the stores,
// the application service and the HTTP layer.
package domain
