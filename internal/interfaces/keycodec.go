package interfaces

import (
	"gh-repo-cache/internal/models"
)

// KeyCodec derives a cache key from a logical request. Encode must be a pure
// function: semantically equal requests, including parameter-order
// permutations, map to the same key; distinct requests map to distinct keys.
type KeyCodec interface {
	Encode(req models.LogicalRequest) string

	// ScopePrefix returns the key prefix covering every entry related to the
	// request's repository or owner, for coarse invalidation after mutations.
	ScopePrefix(req models.LogicalRequest) string
}
