package model

import (
	"regexp"
	"strings"
	"time"
)

// EmbeddingRecord is the stored categorization judgment for one distinct
// transaction description. Descriptions are normalized before storage, and
// the store keeps at most one record per description.
type EmbeddingRecord struct {
	LastUsedAt  time.Time
	Description string
	Category    Category
	Embedding   []float32
	UsageCount  int
}

// SimilarityResult is one ranked candidate from a similarity query.
// It is ephemeral: produced per query, never persisted.
type SimilarityResult struct {
	Description string
	Category    Category
	Similarity  float64
	UsageCount  int
}

// Bank exports embed the transaction time into the description text, which
// would make otherwise-identical purchases look distinct.
var timeOfDayRe = regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)

// NormalizeDescription strips time-of-day substrings and collapses
// whitespace so equal purchases map to the same embedding record.
func NormalizeDescription(description string) string {
	cleaned := timeOfDayRe.ReplaceAllString(description, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
