package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a lexicographically sortable id for quizzes and questions.
// Safe for concurrent use; ids minted in the same millisecond stay monotonic.
func NewULID() string {
	return ulid.Make().String()
}
