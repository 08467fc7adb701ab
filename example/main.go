package main

import (
	"fmt"
	"log"

	"github.com/vectorcore/hnsw"
	"github.com/vectorcore/hnsw/keymap"
)

func main() {
	idx, err := hnsw.NewIndex(hnsw.DefaultConfig())
	if err != nil {
		log.Fatalf("failed to create index: %v", err)
	}

	m := keymap.New[string](idx, nil)

	if err := m.Insert("doc-1", []float32{1, 1, 1}); err != nil {
		log.Fatalf("failed to insert: %v", err)
	}
	if err := m.Insert("doc-2", []float32{1, -1, 0.999}); err != nil {
		log.Fatalf("failed to insert: %v", err)
	}
	if err := m.Insert("doc-3", []float32{1, 0, -0.5}); err != nil {
		log.Fatalf("failed to insert: %v", err)
	}

	neighbors, err := m.Search([]float32{0.5, 0.5, 0.5}, 1)
	if err != nil {
		log.Fatalf("failed to search: %v", err)
	}
	fmt.Printf("best friend: %v (distance %v)\n", neighbors[0].Key, neighbors[0].Distance)

	m.Remove("doc-2")
	fmt.Printf("index size after remove: %d\n", m.Size())

	analyzer := hnsw.NewAnalyzer(idx)
	fmt.Printf("graph height: %d, topography: %v\n", analyzer.Height(), analyzer.Topography())
}
