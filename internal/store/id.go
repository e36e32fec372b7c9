package store

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	keyEntropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	keyEntropyMu sync.Mutex
)

// NewAPIKey mints an opaque key for a provisioned caller.
func NewAPIKey() string {
	keyEntropyMu.Lock()
	defer keyEntropyMu.Unlock()
	return "gda_" + strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), keyEntropy).String())
}
