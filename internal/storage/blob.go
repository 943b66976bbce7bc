package storage

import "io"

// AllExamsPercentagesKey holds the precomputed per-exam percentages served at
// /percentages/all/exams. The payload is produced outside this service.
const AllExamsPercentagesKey = "percentages/all-exams.json"

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
