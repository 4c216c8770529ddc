package assetstore

// queue.go implements ProcessedQueue[A, D]: the multi-producer,
// single-consumer channel of finished/failed processing results flowing
// from worker threads (and the initial external loader) to the Processor's
// serialized drain phase. Producers are worker goroutines spawned by
// hot-reload jobs, the external loader pushing NewAsset records, and the
// processor itself when requeuing partial work; the sole consumer is
// Processor.ProcessCustomDrop running phase P1.
//
// No off-the-shelf lock-free MPSC queue covers this shape among the
// retrieved libraries; a single mutex guarding a plain slice is the
// idiomatic Go substitute used throughout the pack for infrequently-
// contended producer/consumer handoffs (e.g. arena-cache's own shard
// critical sections are "short, mutex-guarded, and that's enough"). FIFO
// ordering per producer follows immediately from serializing all pushes
// through one lock.
//
// © 2025 asset-store authors. MIT License.

import "sync"

// Processed is the tagged union of results pushed onto a ProcessedQueue:
// either a freshly loaded asset or a hot-reload result.
type Processed[A, D any] interface {
	processedRecord()
}

// NewAssetRecord carries the result of converting a freshly loaded asset's
// raw Data. Handle was allocated before the load started; Tracker is
// notified exactly once as this record is drained.
type NewAssetRecord[A, D any] struct {
	Data    FormatValue[D]
	Err     error
	Handle  Handle[A]
	Name    string
	Tracker Tracker
}

func (NewAssetRecord[A, D]) processedRecord() {}

// HotReloadRecord carries the result of re-fetching an already-loaded
// asset's source. OldReload is re-registered on conversion failure so the
// asset keeps watching the same source it did before the failed attempt.
type HotReloadRecord[A, D any] struct {
	Data      FormatValue[D]
	Err       error
	Handle    Handle[A]
	Name      string
	OldReload Reloader[D]
}

func (HotReloadRecord[A, D]) processedRecord() {}

// ProcessedQueue is the shared, cheaply-cloneable queue handed to external
// loaders and worker jobs so they can enqueue results without holding a
// reference to the AssetStore itself.
type ProcessedQueue[A, D any] struct {
	mu    sync.Mutex
	items []Processed[A, D]
}

// NewProcessedQueue constructs an empty queue.
func NewProcessedQueue[A, D any]() *ProcessedQueue[A, D] {
	return &ProcessedQueue[A, D]{}
}

// Push enqueues a record. Safe to call concurrently from any goroutine.
func (q *ProcessedQueue[A, D]) Push(p Processed[A, D]) {
	q.mu.Lock()
	q.items = append(q.items, p)
	q.mu.Unlock()
}

// Pop dequeues the oldest record, if any. Intended for the single consumer
// (Processor.ProcessCustomDrop); safe to call from anywhere regardless.
func (q *ProcessedQueue[A, D]) Pop() (Processed[A, D], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero Processed[A, D]
		return zero, false
	}
	p := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return p, true
}

// Len reports the number of records currently queued. Approximate under
// concurrent producers; useful for metrics/diagnostics only.
func (q *ProcessedQueue[A, D]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
