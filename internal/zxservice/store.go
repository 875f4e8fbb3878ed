package zxservice

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kegliz/zxsyn/zx"
)

type (
	// GraphStore keeps ZX-graphs by id.
	GraphStore interface {
		// SaveGraph stores a graph and returns its id.
		SaveGraph(g *zx.Graph) (string, error)

		// GetGraph returns the graph with the given id.
		GetGraph(id string) (*zx.Graph, error)

		// PutGraph replaces the graph under an existing id.
		PutGraph(id string, g *zx.Graph) error
	}

	// graphStore is an in-memory implementation of GraphStore.
	graphStore struct {
		graphs map[string]*zx.Graph
		sync.RWMutex
	}
)

// NewGraphStore creates a new in-memory graph store.
func NewGraphStore() GraphStore {
	return &graphStore{graphs: make(map[string]*zx.Graph)}
}

// SaveGraph implements GraphStore.
func (gs *graphStore) SaveGraph(g *zx.Graph) (string, error) {
	if err := g.CheckInvariants(); err != nil {
		return "", fmt.Errorf("graph check failed: %w", err)
	}
	id := uuid.New().String()
	gs.Lock()
	gs.graphs[id] = g
	gs.Unlock()
	return id, nil
}

// GetGraph implements GraphStore.
func (gs *graphStore) GetGraph(id string) (*zx.Graph, error) {
	gs.RLock()
	g, ok := gs.graphs[id]
	gs.RUnlock()
	if !ok {
		return nil, fmt.Errorf("graph with id %s not found", id)
	}
	return g, nil
}

// PutGraph implements GraphStore.
func (gs *graphStore) PutGraph(id string, g *zx.Graph) error {
	gs.Lock()
	defer gs.Unlock()
	if _, ok := gs.graphs[id]; !ok {
		return fmt.Errorf("graph with id %s not found", id)
	}
	gs.graphs[id] = g
	return nil
}
