package domain

import "time"

// ChecksumRecord is the staleness witness for one source file. Staleness
// decisions compare ContentHash only; LastModified is informational.
type ChecksumRecord struct {
	FilePath     string
	ContentHash  string
	LastModified time.Time
}
