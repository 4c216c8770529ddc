package assetstore

// dedup.go adapts arena-cache's pkg/loader.go singleflight wrapper to a
// different thundering-herd: many callers requesting the same named asset
// before its NewAssetRecord has been drained should trigger exactly one
// fetch of the raw Data, not one per caller. LoadGroup is a convenience for
// external loaders; the store itself has no opinion on how Data is
// fetched, only on what happens once it arrives as a Processed record.
//
// © 2025 asset-store authors. MIT License.

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// FetchFunc retrieves the raw Data for a named asset, e.g. reading a file or
// issuing a network request.
type FetchFunc[D any] func(ctx context.Context, name string) (D, error)

// LoadGroup de-duplicates concurrent FetchFunc calls for the same asset
// name: only one call runs per name at a time, and every concurrent caller
// for that name receives its result.
type LoadGroup[D any] struct {
	g singleflight.Group
}

// NewLoadGroup constructs an empty LoadGroup.
func NewLoadGroup[D any]() *LoadGroup[D] {
	return &LoadGroup[D]{}
}

// Fetch runs fn for name, collapsing concurrent callers for the same name
// into a single underlying call. The returned shared flag reports whether
// the result was handed to more than one caller; it is true for the caller
// that ran fn as well when others joined it.
func (g *LoadGroup[D]) Fetch(ctx context.Context, name string, fn FetchFunc[D]) (data D, shared bool, err error) {
	res, err, shared := g.g.Do(name, func() (any, error) {
		return fn(ctx, name)
	})
	if err != nil {
		var zero D
		return zero, shared, err
	}
	return res.(D), shared, nil
}

// Forget releases name from the group's de-duplication bookkeeping, so the
// next Fetch for name runs fn even while an earlier call for name is still
// in flight. A call that has already completed is forgotten automatically.
func (g *LoadGroup[D]) Forget(name string) {
	g.g.Forget(name)
}
