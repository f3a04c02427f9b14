package family

import (
	"context"
	"fmt"
	"io"
)

// Store is the interface for the family record backend.
// Implementations: KuzuStore (persistent index), MemStore (files and tests).
// Strategies never read a Store directly; they work on a Graph snapshot
// taken with Snapshot.
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddPerson(ctx context.Context, p Person) error

	// Read operations.
	GetPerson(ctx context.Context, id string) (*Person, error)
	ListPersons(ctx context.Context) ([]Person, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}

// EdgeWriter is implemented by stores that materialize relationship edges
// next to the person records.
type EdgeWriter interface {
	AddEdge(ctx context.Context, edge Edge) error
}

// Snapshot reads every record from store and builds an immutable Graph.
func Snapshot(ctx context.Context, store Store) (*Graph, error) {
	people, err := store.ListPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return NewGraph(people), nil
}

// Import writes every record of g into store, followed by the reconciled
// edges when the store keeps them.
func Import(ctx context.Context, store Store, g *Graph) error {
	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	for _, p := range g.People() {
		if err := store.AddPerson(ctx, p); err != nil {
			return fmt.Errorf("add person %s: %w", p.ID, err)
		}
	}
	ew, ok := store.(EdgeWriter)
	if !ok {
		return nil
	}
	for _, e := range g.Edges() {
		if err := ew.AddEdge(ctx, e); err != nil {
			return fmt.Errorf("add edge %s->%s: %w", e.SourceID, e.TargetID, err)
		}
	}
	return nil
}
