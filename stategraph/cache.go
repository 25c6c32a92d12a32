// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package stategraph

import "sync"

// A Cache stores the graphs already built
// for a given number of regions.
// It is safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	graphs map[int]*Graph
}

// NewCache returns an empty graph cache.
func NewCache() *Cache {
	return &Cache{
		graphs: make(map[int]*Graph),
	}
}

// Graph returns the graph for the indicated number of regions,
// building it if it is not already in the cache.
func (c *Cache) Graph(regions int) (*Graph, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if g, ok := c.graphs[regions]; ok {
		return g, nil
	}
	g, err := Build(regions)
	if err != nil {
		return nil, err
	}
	c.graphs[regions] = g
	return g, nil
}
