package assetstore

// interfaces.go declares every capability the asset store consumes from
// external collaborators: the format/loader subsystem, the progress/tracker
// subsystem, the job-scheduler host, and the thread pool.
// None of these are implemented by this package beyond the small runnable
// defaults in internal/workerpool and pkg/dedup.go — the core engine only
// ever depends on the interfaces below.
//
// © 2025 asset-store authors. MIT License.

// Tracker is notified exactly once per NewAsset outcome: success, failure,
// or the "loaded but unused" warning path.
type Tracker interface {
	Success()
	Fail(id uint32, assetName, itemName string, err error)
}

// Reloader is the capability an asset's source hands the store so it can be
// polled for changes and re-fetched. Reload() produces the next FormatValue
// to run back through the asset's ConvertFunc.
type Reloader[D any] interface {
	NeedsReload() bool
	Reload() (FormatValue[D], error)
	Name() string
	Format() string
	Clone() Reloader[D]
}

// HotReloadStrategy gates phase P3 of a Processor tick: the reload scan only
// runs on frames where NeedsReload returns true.
type HotReloadStrategy interface {
	NeedsReload(frame uint64) bool
}

// FormatValue is the pre-processing payload handed to a ConvertFunc, plus an
// optional Reloader the source supplied so the asset can be watched.
type FormatValue[D any] struct {
	Data    D
	Reload  Reloader[D]
}

// WorkerPool is the host's thread pool. Spawn is expected to run job on
// another goroutine: a pool that runs it inline performs the reload's fetch
// on the processing goroutine, blocking the tick until it returns.
type WorkerPool interface {
	Spawn(job func())
}

// ProcessingState is the outcome of a ConvertFunc: either more Data is
// needed (Loading) or a finished asset is ready (Loaded).
type ProcessingState[A, D any] struct {
	loaded bool
	asset  A
	data   D
}

// Loaded wraps a finished asset.
func Loaded[A, D any](asset A) ProcessingState[A, D] {
	return ProcessingState[A, D]{loaded: true, asset: asset}
}

// Loading wraps partial data that needs another processing pass.
func Loading[A, D any](data D) ProcessingState[A, D] {
	return ProcessingState[A, D]{loaded: false, data: data}
}

// IsLoaded reports whether the state carries a finished asset.
func (s ProcessingState[A, D]) IsLoaded() bool { return s.loaded }

// Asset returns the finished asset. Only meaningful when IsLoaded is true.
func (s ProcessingState[A, D]) Asset() A { return s.asset }

// Data returns the partial data. Only meaningful when IsLoaded is false.
func (s ProcessingState[A, D]) Data() D { return s.data }

// ConvertFunc is the user-supplied conversion from raw Data to an asset,
// possibly iterative (it may return Loading more than once before Loaded).
type ConvertFunc[A, D any] func(D) (ProcessingState[A, D], error)

// FrameClock supplies the current frame number to a ProcessorDriver tick,
// standing in for the host scheduler's per-frame time resource.
type FrameClock interface {
	FrameNumber() uint64
}

// FrameClockFunc adapts a plain function to FrameClock.
type FrameClockFunc func() uint64

// FrameNumber implements FrameClock.
func (f FrameClockFunc) FrameNumber() uint64 { return f() }
