// Package storage archives rendered receipt documents.
package storage

import "context"

// ObjectStore uploads bytes under a named key and returns a durable
// retrieval URL for the stored object.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
