package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// Generator produces the two kinds of identifiers the service needs:
// short sortable ids for request logging, and random session tokens
// sent to the booking backend.
type Generator interface {
	RequestID() string
	SessionID() string
}

type IDGenerator struct {
	node *snowflake.Node
	mu   sync.Mutex
}

// New initializes an ID generator.
// nodeID must be unique per server instance (0-1023) to prevent collisions.
func New(nodeID int64) (*IDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &IDGenerator{
		node: node,
	}, nil
}

// RequestID returns a new unique snowflake id as a string
func (g *IDGenerator) RequestID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.node.Generate().String()
}

// SessionID returns a random UUID used as the per-request backend
// session token. Random rather than time-based so concurrent requests
// can never collide.
func (g *IDGenerator) SessionID() string {
	return uuid.NewString()
}
