package assetstore

// store.go implements AssetStore[A, D]: the dense, id-keyed owner of
// decoded assets. It pairs internal/slotset's dense, id-indexed storage
// with internal/bitset's presence set, the same way a VecStorage pairs
// with a hibitset::BitSet, and keeps one strong Handle per occupied id in
// `handles` — the mechanism Processor's sweep relies on to learn when an
// asset has no external strong reference left.
//
// Every mutating method here requires the caller to hold exclusive access
// to the store: tick invocations, and therefore every mutation, are
// expected to be serialized by the host scheduler. Handle refcounts and
// ProcessedQueue pushes are the only state shared across goroutines
// without that exclusivity requirement.
//
// © 2025 asset-store authors. MIT License.

import (
	"go.uber.org/zap"

	"github.com/brackenforge/assetstore/internal/bitset"
	"github.com/brackenforge/assetstore/internal/idalloc"
	"github.com/brackenforge/assetstore/internal/slotset"
)

// AssetStore owns every decoded asset of type A produced from raw data of
// type D, and hands out Handle[A] values referencing them.
type AssetStore[A, D any] struct {
	name string

	assets   slotset.Dense[A]
	presence bitset.Set
	handles  []Handle[A]

	idAlloc   idalloc.Allocator
	processed *ProcessedQueue[A, D]
	reloads   reloadRegistry[A, D]

	cfg *config[A, D]

	logger  *zap.Logger
	metrics metricsSink
}

// New constructs an empty AssetStore. name identifies the asset type for
// logging and metrics.
func New[A, D any](name string, opts ...Option[A, D]) *AssetStore[A, D] {
	cfg := defaultConfig[A, D](name)
	applyOptions(cfg, opts)

	return &AssetStore[A, D]{
		name:      name,
		processed: NewProcessedQueue[A, D](),
		cfg:       cfg,
		logger:    cfg.logger,
		metrics:   newMetricsSink(cfg.registry),
	}
}

// Processed exposes the queue external loaders and worker jobs push
// Processed[A, D] records onto. Shared by reference so producers never need
// to hold onto the AssetStore itself.
func (s *AssetStore[A, D]) Processed() *ProcessedQueue[A, D] {
	return s.processed
}

// Allocate returns a handle bound to a freshly allocated id. The store
// never recycles a retired id's Handle object: resurrecting an old cell
// under a new asset would let a stale WeakHandle silently upgrade again.
func (s *AssetStore[A, D]) Allocate() Handle[A] {
	return newHandle[A](s.idAlloc.NextID())
}

// Insert writes asset into storage synchronously, skipping the usual
// Data → ConvertFunc step. Intended for procedurally generated assets, not
// as the normal ingestion path (that goes through the ProcessedQueue).
func (s *AssetStore[A, D]) Insert(asset A) Handle[A] {
	h := s.Allocate()
	id := h.ID()
	s.presence.Add(id)
	s.handles = append(s.handles, h.Clone())
	s.assets.Insert(id, asset)
	return h
}

// CloneAsset duplicates the asset behind handle into a fresh handle/id pair
// with version 0, using the CloneFn supplied via WithCloneFn. Returns false
// if handle is absent or no CloneFn was configured.
func (s *AssetStore[A, D]) CloneAsset(handle Handle[A]) (Handle[A], bool) {
	if s.cfg.cloneFn == nil {
		return Handle[A]{}, false
	}
	asset, ok := s.Get(handle)
	if !ok {
		return Handle[A]{}, false
	}
	return s.Insert(s.cfg.cloneFn(asset)), true
}

// Get returns the asset behind handle, if occupied.
func (s *AssetStore[A, D]) Get(handle Handle[A]) (A, bool) {
	return s.GetByID(handle.ID())
}

// GetMut returns a mutable pointer to the asset behind handle, if occupied.
func (s *AssetStore[A, D]) GetMut(handle Handle[A]) (*A, bool) {
	if !s.presence.Contains(handle.ID()) {
		return nil, false
	}
	return &s.assets.Get(handle.ID()).Asset, true
}

// GetByID returns the asset at id, if occupied.
func (s *AssetStore[A, D]) GetByID(id uint32) (A, bool) {
	if !s.presence.Contains(id) {
		var zero A
		return zero, false
	}
	return s.assets.Get(id).Asset, true
}

// GetByIDUnchecked elides the presence check. Calling it with an
// unoccupied id is undefined behavior on the caller's part.
func (s *AssetStore[A, D]) GetByIDUnchecked(id uint32) A {
	return s.assets.Get(id).Asset
}

// GetVersion returns the replace/hot-reload version counter for handle, if
// occupied.
func (s *AssetStore[A, D]) GetVersion(handle Handle[A]) (uint32, bool) {
	if !s.presence.Contains(handle.ID()) {
		return 0, false
	}
	return s.assets.Get(handle.ID()).Version, true
}

// GetWithVersion returns both the asset and its version for handle.
func (s *AssetStore[A, D]) GetWithVersion(handle Handle[A]) (A, uint32, bool) {
	if !s.presence.Contains(handle.ID()) {
		var zero A
		return zero, 0, false
	}
	slot := s.assets.Get(handle.ID())
	return slot.Asset, slot.Version, true
}

// Contains reports whether handle currently points at a live asset.
func (s *AssetStore[A, D]) Contains(handle Handle[A]) bool {
	return s.presence.Contains(handle.ID())
}

// ContainsID reports whether id currently points at a live asset.
func (s *AssetStore[A, D]) ContainsID(id uint32) bool {
	return s.presence.Contains(id)
}

// Replace overwrites the asset behind handle, bumping its version, and
// returns the previous value. Panics if handle's id is not occupied.
func (s *AssetStore[A, D]) Replace(handle Handle[A], asset A) A {
	id := handle.ID()
	if !s.presence.Contains(id) {
		panic(errInvalidHandleReplace(id))
	}
	slot := s.assets.Get(id)
	slot.Version++
	old := slot.Asset
	slot.Asset = asset
	return old
}

// UnloadAll clears every occupied slot. Outstanding handles become inert:
// Get/Contains report absent, but the store's own strong references in
// `handles` are left untouched (they are reclaimed the normal way, by the
// next sweep, once nothing external references them either).
func (s *AssetStore[A, D]) UnloadAll() {
	s.assets.Clear()
	s.presence.Clear()
}

// Len reports the number of strong handles the store itself holds: one per
// committed asset, including assets cleared by UnloadAll until the sweep
// reclaims their handles.
func (s *AssetStore[A, D]) Len() int {
	return len(s.handles)
}

// Name returns the asset type name this store was constructed with.
func (s *AssetStore[A, D]) Name() string {
	return s.name
}
