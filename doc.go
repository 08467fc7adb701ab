// Package hnsw implements an in-memory approximate nearest-neighbor index
// over fixed-dimensional float32 vectors, built on the Hierarchical
// Navigable Small World graph.
//
// The index is single-writer: Insert and Remove must not be called
// concurrently with each other or with Search. Search itself does not
// mutate the index and is safe for concurrent callers under an external
// reader-writer lock discipline.
package hnsw
