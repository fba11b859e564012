package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes an ingested resume document
type Metadata struct {
	Filename  string `json:"filename,omitempty"`
	Format    Format `json:"format"`
	Bytes     int    `json:"bytes"`
	Pages     int    `json:"pages,omitempty"` // PDF only
	Chars     int    `json:"chars"`           // length of the cleaned text
	Hash      string `json:"hash"`            // SHA256 hex digest of the raw upload
	Timestamp string `json:"timestamp"`       // RFC3339
}

// NewMetadata creates metadata for raw document bytes with the current timestamp
func NewMetadata(filename string, format Format, data []byte) *Metadata {
	return &Metadata{
		Filename:  filename,
		Format:    format,
		Bytes:     len(data),
		Hash:      computeHash(data),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
