//go:build cgo

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dusk-indust/famtree/internal/family"
)

func loadIndex(ctx context.Context, path string) (*family.Graph, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no family index at %s\nPass --input or run 'famtree import --input <file>' first", path)
	}
	store, err := family.NewKuzuFileStore(path)
	if err != nil {
		return nil, fmt.Errorf("open family index: %w", err)
	}
	defer store.Close()
	return family.Snapshot(ctx, store)
}

// importGraph replaces the family index at path with the records of g.
func importGraph(ctx context.Context, path string, g *family.Graph) (*family.GraphStats, error) {
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("clear family index: %w", err)
	}
	store, err := family.NewKuzuFileStore(path)
	if err != nil {
		return nil, fmt.Errorf("open family index: %w", err)
	}
	defer store.Close()

	if err := family.Import(ctx, store, g); err != nil {
		return nil, err
	}
	return store.Stats(ctx)
}
