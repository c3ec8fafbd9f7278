package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

func TestNewULID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewULID()
		_, err := ulid.ParseStrict(id)
		assert.NoError(t, err)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate ULID %s", id)
		seen[id] = struct{}{}
	}
}
