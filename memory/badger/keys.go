package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	turnPrefix = "convturn"
	turnIDSeq  = "convturnseq"
)

// makeTurnKey generates a composite key for one stored turn.
// Format: prefix:len(userID):userID:seq
func makeTurnKey(userID string, seq uint64) []byte {
	prefix := makeTurnPrefix(userID)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeTurnPrefix generates the key prefix shared by all of a user's turns.
// The user id is length-prefixed so ids containing separator bytes cannot
// collide with each other's prefixes.
func makeTurnPrefix(userID string) []byte {
	prefixBytes := []byte(turnPrefix + ":")
	buf := make([]byte, len(prefixBytes)+2+len(userID)+1)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint16(buf[offset:], uint16(len(userID)))
	offset += 2
	offset += copy(buf[offset:], userID)
	buf[offset] = ':'
	return buf
}
