package registry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ulidEntropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	ulidEntropyMu sync.Mutex
)

// NewConnID returns a lexically sortable connection id.
func NewConnID() string {
	ulidEntropyMu.Lock()
	defer ulidEntropyMu.Unlock()
	return "conn_" + ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}
