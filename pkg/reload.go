package assetstore

// reload.go implements reloadRegistry: the table of (WeakHandle, Reloader)
// pairs the processor's P3 phase scans to decide which live assets need
// their backing source re-fetched. It deliberately holds no lock and does
// no I/O itself — pruning and due-selection are pure slice operations
// executed from inside the processor's exclusive tick, the same
// single-threaded serialized boundary drawn around all other store
// mutation.
//
// © 2025 asset-store authors. MIT License.

// reloadEntry pairs a weak reference to a live asset with the Reloader
// that knows how to refresh it.
type reloadEntry[A, D any] struct {
	weak   WeakHandle[A]
	reload Reloader[D]
}

// reloadRegistry is the slice-backed table described above. Zero value is
// ready to use.
type reloadRegistry[A, D any] struct {
	entries []reloadEntry[A, D]
}

// register adds a new (weak handle, reloader) pair, called whenever a
// committed FormatValue carries a non-nil Reloader.
func (r *reloadRegistry[A, D]) register(weak WeakHandle[A], reload Reloader[D]) {
	r.entries = append(r.entries, reloadEntry[A, D]{weak: weak, reload: reload})
}

// pruneDead drops every entry whose asset no longer has any strong
// reference, so the scan never wastes a reload on something already
// swept.
func (r *reloadRegistry[A, D]) pruneDead() {
	live := r.entries[:0]
	for _, e := range r.entries {
		if !e.weak.IsDead() {
			live = append(live, e)
		}
	}
	r.entries = live
}

// takeDue removes and returns one entry whose reloader currently reports
// NeedsReload, or ok=false if no entry is due. Swap-remove: scan order
// carries no meaning here.
func (r *reloadRegistry[A, D]) takeDue() (reloadEntry[A, D], bool) {
	for i, e := range r.entries {
		if !e.reload.NeedsReload() {
			continue
		}
		r.entries[i] = r.entries[len(r.entries)-1]
		r.entries = r.entries[:len(r.entries)-1]
		return e, true
	}
	var zero reloadEntry[A, D]
	return zero, false
}

// Len reports how many assets are currently registered for hot reload.
func (r *reloadRegistry[A, D]) Len() int {
	return len(r.entries)
}
