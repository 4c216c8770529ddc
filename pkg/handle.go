package assetstore

// handle.go implements Handle[A]/WeakHandle[A]: a reference-counted 32-bit id
// cell, the mechanism an AssetStore uses as its sole liveness oracle. A
// Handle is cheap to copy and
// compares equal to another Handle iff they share the same underlying cell —
// which falls out for free in Go, since a Handle's only field is a pointer
// and struct equality on a single-pointer struct is pointer identity. Two
// handles minted by separate allocate() calls therefore never compare equal,
// even if (hypothetically) they carried the same numeric id.
//
// Go has no destructors, so rather than relying on a Handle falling out of
// scope to decrement its strong count, this package requires an explicit
// Release() call — the same Ref()/Unref() discipline the retrieved pebble
// cache.Cache/cache.Handle pair uses for its own refcounted handles.
// Forgetting to Release a Handle leaks a strong reference exactly the way
// forgetting to Unref leaks a pebble cache reference: the asset simply never
// becomes eligible for the sweep in Processor.ProcessCustomDrop.
//
// © 2025 asset-store authors. MIT License.

import "sync/atomic"

// cell is the shared refcounted id. Every live Handle/WeakHandle pointing at
// the same asset slot shares exactly one cell; a freshly allocated id always
// gets a brand-new cell so a stale WeakHandle can never resurrect against a
// reused id.
type cell struct {
	id     uint32
	strong atomic.Int32
}

// Handle is a cheap, shareable strong reference to a single asset slot in an
// AssetStore[A, D]. The zero Handle is not valid; obtain one from
// AssetStore.Allocate, AssetStore.Insert, or by upgrading a WeakHandle.
type Handle[A any] struct {
	c *cell
}

// newHandle mints a handle around a freshly allocated id with strong count 1.
func newHandle[A any](id uint32) Handle[A] {
	c := &cell{id: id}
	c.strong.Store(1)
	return Handle[A]{c: c}
}

// ID returns the 32-bit id this handle refers to.
func (h Handle[A]) ID() uint32 {
	return h.c.id
}

// Valid reports whether h was obtained from an allocator (as opposed to
// being the zero Handle).
func (h Handle[A]) Valid() bool {
	return h.c != nil
}

// Clone returns a new Handle sharing this one's cell, incrementing the
// strong count. Infallible.
func (h Handle[A]) Clone() Handle[A] {
	h.c.strong.Add(1)
	return Handle[A]{c: h.c}
}

// Release decrements the strong count. Callers must call Release exactly
// once per Handle obtained (directly or via Clone/Upgrade) once they are
// done with it — the explicit substitute for a scope-exit destructor.
func (h Handle[A]) Release() {
	if n := h.c.strong.Add(-1); n < 0 {
		panic("assetstore: Handle released more times than it was acquired")
	}
}

// Downgrade produces a WeakHandle observing the same cell without affecting
// the strong count.
func (h Handle[A]) Downgrade() WeakHandle[A] {
	return WeakHandle[A]{c: h.c}
}

// IsUnique reports whether this is the only live strong handle to its
// asset. Used internally by Processor to detect garbage; exported so hosts
// that want to pre-filter before a tick can check it directly.
func (h Handle[A]) IsUnique() bool {
	return h.c.strong.Load() == 1
}

// WeakHandle is a non-owning observer of a Handle's liveness. Holding one
// does not keep the asset's id alive.
type WeakHandle[A any] struct {
	c *cell
}

// Upgrade returns a new strong Handle iff at least one strong handle still
// exists, atomically incrementing the strong count in that case.
func (w WeakHandle[A]) Upgrade() (Handle[A], bool) {
	if w.c == nil {
		return Handle[A]{}, false
	}
	for {
		n := w.c.strong.Load()
		if n <= 0 {
			return Handle[A]{}, false
		}
		if w.c.strong.CompareAndSwap(n, n+1) {
			return Handle[A]{c: w.c}, true
		}
	}
}

// IsDead reports whether every strong handle in this line is gone, i.e.
// upgrading would fail.
func (w WeakHandle[A]) IsDead() bool {
	return w.c == nil || w.c.strong.Load() <= 0
}
