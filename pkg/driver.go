package assetstore

// driver.go implements ProcessorDriver: the single mandatory integration
// surface between the store and the host. A host scheduler ticks the
// driver once per frame; everything else (the conversion function, the
// pool, the optional reload strategy) was already nailed down when the
// driver was constructed.
//
// © 2025 asset-store authors. MIT License.

// ProcessorDriver binds an AssetStore to the collaborators its tick needs:
// a frame clock, a worker pool, a conversion function, and an optional
// hot-reload strategy.
type ProcessorDriver[A, D any] struct {
	store    *AssetStore[A, D]
	clock    FrameClock
	pool     WorkerPool
	convert  ConvertFunc[A, D]
	strategy HotReloadStrategy
	drop     DropFn[A]
}

// NewProcessorDriver constructs a driver around store. strategy may be nil
// to disable hot-reload scanning entirely.
func NewProcessorDriver[A, D any](
	store *AssetStore[A, D],
	clock FrameClock,
	pool WorkerPool,
	convert ConvertFunc[A, D],
	strategy HotReloadStrategy,
) *ProcessorDriver[A, D] {
	return &ProcessorDriver[A, D]{
		store:    store,
		clock:    clock,
		pool:     pool,
		convert:  convert,
		strategy: strategy,
		drop:     store.cfg.dropFn,
	}
}

// Tick reads the current frame number and runs one Processor pass over the
// bound store. Intended to be called once per frame by the host scheduler;
// the store itself enforces no serialization, so callers must not invoke
// Tick concurrently with itself or with any other store mutation.
func (d *ProcessorDriver[A, D]) Tick() {
	d.store.ProcessCustomDrop(d.clock.FrameNumber(), d.convert, d.strategy, d.pool, d.drop)
}

// Store returns the underlying store, for callers that need direct access
// (e.g. to call Insert or Get) alongside the driver's ticking.
func (d *ProcessorDriver[A, D]) Store() *AssetStore[A, D] {
	return d.store
}
