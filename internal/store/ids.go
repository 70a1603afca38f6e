package store

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Kind names the collection an id is generated for.
type Kind string

const (
	KindClient    Kind = "client"
	KindProject   Kind = "project"
	KindWorkspace Kind = "workspace"
)

// IDGenerator produces candidate ids for new records. The store discards
// candidates that collide with an existing id and asks again.
type IDGenerator interface {
	NextID(kind Kind) string
}

// idObserver is implemented by generators that want to see seeded ids
// before producing new ones.
type idObserver interface {
	Observe(kind Kind, id string)
}

// SequenceIDs generates ids of the form <kind><n> with n increasing per kind.
type SequenceIDs struct {
	mu   sync.Mutex
	last map[Kind]int
}

// NewSequenceIDs returns a generator whose first id for every kind ends in 1.
func NewSequenceIDs() *SequenceIDs {
	return &SequenceIDs{last: make(map[Kind]int)}
}

// Observe advances the counter for kind past the numeric suffix of id, if
// id has the <kind><n> shape.
func (g *SequenceIDs) Observe(kind Kind, id string) {
	rest, ok := strings.CutPrefix(id, string(kind))
	if !ok {
		return
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if n > g.last[kind] {
		g.last[kind] = n
	}
}

// NextID implements IDGenerator.
func (g *SequenceIDs) NextID(kind Kind) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last[kind]++
	return fmt.Sprintf("%s%d", kind, g.last[kind])
}

// UUIDs generates random version 4 UUIDs.
type UUIDs struct{}

// NextID implements IDGenerator.
func (UUIDs) NextID(Kind) string {
	return uuid.NewString()
}
