package assetstore

// processor.go implements the per-tick drain/sweep/reload-scan algorithm
// that turns queued Processed records into committed or discarded assets.
// Process is the common case with a no-op drop_fn; ProcessCustomDrop lets a
// caller observe (or redirect) every asset the sweep evicts.
//
// Go has no scope-exit destructor, so every place a Handle's strong
// reference needs releasing is spelled out here as an explicit
// Handle.Release() call. Getting the placement right is the entire point
// of this file; see the per-branch comments.
//
// © 2025 asset-store authors. MIT License.

import "go.uber.org/zap"

// Process drains the processed queue, sweeps unused handles, and triggers a
// hot-reload scan if due, using the DropFn configured via WithDropFn (a
// no-op by default).
func (s *AssetStore[A, D]) Process(frame uint64, convert ConvertFunc[A, D], strategy HotReloadStrategy, pool WorkerPool) {
	s.ProcessCustomDrop(frame, convert, strategy, pool, s.cfg.dropFn)
}

// ProcessCustomDrop is Process with an explicit drop callback, invoked for
// every asset the unused-handle sweep or a hot-reload replacement evicts.
func (s *AssetStore[A, D]) ProcessCustomDrop(frame uint64, convert ConvertFunc[A, D], strategy HotReloadStrategy, pool WorkerPool, drop DropFn[A]) {
	s.metrics.setQueueDepth(s.name, s.processed.Len())

	s.drain(convert, drop)
	s.sweep(drop)

	if strategy != nil && strategy.NeedsReload(frame) {
		s.hotReloadScan(pool)
	}
}

// drain is phase P1: pop every currently queued record and either commit
// it, discard it on error, or requeue it for another round of conversion.
// Requeued records are pushed back in one batch once the pass finishes, not
// interleaved mid-drain, so a record that keeps requeuing itself cannot
// spin the loop forever within a single tick.
func (s *AssetStore[A, D]) drain(convert ConvertFunc[A, D], drop DropFn[A]) {
	var requeue []Processed[A, D]

	for {
		rec, ok := s.processed.Pop()
		if !ok {
			break
		}
		if next := s.handleRecord(rec, convert, drop); next != nil {
			requeue = append(requeue, next)
		}
	}

	for _, rec := range requeue {
		s.processed.Push(rec)
	}
}

// handleRecord processes a single record and returns a non-nil replacement
// to requeue it for another pass, or nil once it has been fully consumed
// (committed or discarded).
func (s *AssetStore[A, D]) handleRecord(rec Processed[A, D], convert ConvertFunc[A, D], drop DropFn[A]) Processed[A, D] {
	switch r := rec.(type) {
	case NewAssetRecord[A, D]:
		return s.handleNewAsset(r, convert)
	case HotReloadRecord[A, D]:
		return s.handleHotReload(r, convert, drop)
	default:
		return nil
	}
}

func (s *AssetStore[A, D]) handleNewAsset(r NewAssetRecord[A, D], convert ConvertFunc[A, D]) Processed[A, D] {
	if r.Err != nil {
		s.logger.Error("asset load failed", zap.String("asset", s.name), zap.String("name", r.Name), zap.Error(r.Err))
		r.Tracker.Fail(r.Handle.ID(), s.name, r.Name, wrapAssetErr(r.Err, r.Name))
		s.metrics.incFailed(s.name)
		r.Handle.Release()
		return nil
	}

	state, err := convert(r.Data.Data)
	if err != nil {
		s.logger.Error("asset conversion failed", zap.String("asset", s.name), zap.String("name", r.Name), zap.Error(err))
		r.Tracker.Fail(r.Handle.ID(), s.name, r.Name, wrapAssetErr(err, r.Name))
		s.metrics.incFailed(s.name)
		r.Handle.Release()
		return nil
	}

	if !state.IsLoaded() {
		r.Data.Data = state.Data()
		return NewAssetRecord[A, D]{
			Data:    r.Data,
			Handle:  r.Handle,
			Name:    r.Name,
			Tracker: r.Tracker,
		}
	}

	// The uniqueness check happens before the store commits its own strong
	// reference: IsUnique reflects whether the caller already released its
	// copy while the load was in flight.
	unused := r.Handle.IsUnique()

	id := r.Handle.ID()
	s.presence.Add(id)
	s.handles = append(s.handles, r.Handle.Clone())
	s.assets.Insert(id, state.Asset())
	if r.Data.Reload != nil {
		s.reloads.register(r.Handle.Downgrade(), r.Data.Reload)
	}

	if unused {
		s.logger.Warn("asset loaded with no external strong reference",
			zap.String("asset", s.name), zap.String("name", r.Name), zap.Uint32("id", id))
		r.Tracker.Fail(id, s.name, r.Name, &ErrUnusedHandle{ID: id})
		s.metrics.incUnused(s.name)
	} else {
		s.logger.Debug("asset loaded", zap.String("asset", s.name), zap.String("name", r.Name), zap.Uint32("id", id))
		r.Tracker.Success()
		s.metrics.incLoaded(s.name)
	}

	r.Handle.Release()
	return nil
}

func (s *AssetStore[A, D]) handleHotReload(r HotReloadRecord[A, D], convert ConvertFunc[A, D], drop DropFn[A]) Processed[A, D] {
	if r.Err != nil {
		s.logger.Warn("hot reload failed, keeping previous version",
			zap.String("asset", s.name), zap.String("name", r.Name), zap.Error(r.Err))
		s.metrics.incReloadFailed(s.name)
		s.reloads.register(r.Handle.Downgrade(), r.OldReload)
		r.Handle.Release()
		return nil
	}

	state, err := convert(r.Data.Data)
	if err != nil {
		s.logger.Warn("hot reload conversion failed, keeping previous version",
			zap.String("asset", s.name), zap.String("name", r.Name), zap.Error(err))
		s.metrics.incReloadFailed(s.name)
		s.reloads.register(r.Handle.Downgrade(), r.OldReload)
		r.Handle.Release()
		return nil
	}

	if !state.IsLoaded() {
		r.Data.Data = state.Data()
		return HotReloadRecord[A, D]{
			Data:      r.Data,
			Handle:    r.Handle,
			Name:      r.Name,
			OldReload: r.OldReload,
		}
	}

	id := r.Handle.ID()
	if !s.presence.Contains(id) {
		panic("assetstore: hot reload completed for an id no longer present in the store")
	}

	slot := s.assets.Get(id)
	slot.Version++
	old := slot.Asset
	slot.Asset = state.Asset()
	drop(old)

	if r.Data.Reload != nil {
		s.reloads.register(r.Handle.Downgrade(), r.Data.Reload)
	}

	r.Handle.Release()
	return nil
}

// sweep is phase P2: reclaim every id whose store-owned handle is the only
// strong reference left. A reclaimed id is never reused — see Allocate.
func (s *AssetStore[A, D]) sweep(drop DropFn[A]) {
	freed := 0
	live := s.handles[:0]

	for _, h := range s.handles {
		if !h.IsUnique() {
			live = append(live, h)
			continue
		}

		id := h.ID()
		old := s.assets.Remove(id)
		s.presence.Remove(id)
		drop(old)
		h.Release()
		freed++
	}
	s.handles = live

	if freed > 0 {
		s.logger.Debug("swept unused assets", zap.String("asset", s.name), zap.Int("count", freed))
		s.metrics.incSwept(s.name, freed)
	}
}

// hotReloadScan is phase P3: prune dead entries, then dispatch a reload job
// for every entry currently due, repeating until none remain due.
func (s *AssetStore[A, D]) hotReloadScan(pool WorkerPool) {
	s.reloads.pruneDead()

	for {
		entry, ok := s.reloads.takeDue()
		if !ok {
			return
		}

		handle, ok := entry.weak.Upgrade()
		if !ok {
			continue
		}

		name := entry.reload.Name()
		format := entry.reload.Format()
		reload := entry.reload
		queue := s.processed
		assetName := s.name

		s.metrics.incReloadSpawned(assetName)
		pool.Spawn(func() {
			oldReload := reload.Clone()
			fv, err := reload.Reload()
			if err != nil {
				err = wrapFormatErr(err, format)
			}
			queue.Push(HotReloadRecord[A, D]{
				Data:      fv,
				Err:       err,
				Handle:    handle,
				Name:      name,
				OldReload: oldReload,
			})
		})
	}
}
