package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Language is a supported query language tag.
type Language string

const (
	// LanguageEnglish is the tag for English queries and the English document collection.
	LanguageEnglish Language = "en"
	// LanguageArabic is the tag for Arabic queries and the Arabic document collection.
	LanguageArabic Language = "ar"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content produces identical IDs, which is how passages retrieved by
// different query rewrites are recognized as duplicates.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Passage is a text chunk retrieved from a document collection.
type Passage struct {
	Content  string
	Score    float32
	Metadata map[string]any
}

// ID returns the content-based identity of the passage.
func (p *Passage) ID() ID {
	return IDFromContent(p.Content)
}

// Turn is one question/answer exchange in a user's conversation.
type Turn struct {
	Question  string
	Answer    string
	Timestamp time.Time
}
