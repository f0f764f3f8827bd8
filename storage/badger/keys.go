package badger

import (
	"encoding/binary"

	"github.com/civiclens/civiclens/core"
)

// Key prefixes for different data types
const (
	documentPrefix = "docrec"
	chatTurnPrefix = "chatrec"
	chatTurnIDSeq  = "chatrecseq"
)

// makeDocumentKey generates a key for a document by its DocumentID.
func makeDocumentKey(documentID string) []byte {
	return []byte(documentPrefix + ":" + documentID)
}

// makeChatTurnKey generates a key for a chat turn by ID.
// The ID is written in BigEndian order so lexicographic iteration over the
// prefix yields turns in append order.
func makeChatTurnKey(id core.ID) []byte {
	prefix := chatTurnPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
