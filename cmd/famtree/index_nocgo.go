//go:build !cgo

package main

import (
	"context"
	"errors"

	"github.com/dusk-indust/famtree/internal/family"
)

var errNoIndex = errors.New("the family index needs a cgo build; pass --input instead")

func loadIndex(context.Context, string) (*family.Graph, error) {
	return nil, errNoIndex
}

func importGraph(context.Context, string, *family.Graph) (*family.GraphStats, error) {
	return nil, errNoIndex
}
