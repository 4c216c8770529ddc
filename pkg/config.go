package assetstore

// config.go defines the functional options New accepts, the same shape as
// arena-cache's pkg/config.go: a private config[A,D] struct filled in by
// defaultConfig and mutated by Option[A,D] values, applied in order by
// applyOptions. Options never allocate unless necessary; they mostly just
// capture pointers to external collaborators (a logger, a registry, a
// clone/drop function).
//
// © 2025 asset-store authors. MIT License.

import (
	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus"
)

// CloneFn duplicates an asset value. Required for CloneAsset to do anything
// useful; Go has no generic Clone constraint, so this plays the role the
// original's `A: Clone` trait bound does.
type CloneFn[A any] func(A) A

// DropFn is invoked for every asset evicted from the store — by the
// unused-handle sweep or by a hot-reload replacing the previous value.
// UnloadAll does not invoke it. The default is a no-op, matching process()'s delegation to
// process_custom_drop with an empty drop closure.
type DropFn[A any] func(A)

// Option configures an AssetStore at construction time.
type Option[A, D any] func(*config[A, D])

type config[A, D any] struct {
	name     string
	logger   *zap.Logger
	registry *prometheus.Registry
	cloneFn  CloneFn[A]
	dropFn   DropFn[A]
}

func defaultConfig[A, D any](name string) *config[A, D] {
	return &config[A, D]{
		name:   name,
		logger: zap.NewNop(),
		dropFn: func(A) {},
	}
}

// WithLogger plugs an external zap.Logger. The store logs committed loads,
// load and hot-reload failures, unused-handle warnings, and sweep counts;
// dispatching a reload job is not logged.
func WithLogger[A, D any](l *zap.Logger) Option[A, D] {
	return func(c *config[A, D]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection for this store. Passing
// nil disables metrics (the default).
func WithMetrics[A, D any](reg *prometheus.Registry) Option[A, D] {
	return func(c *config[A, D]) {
		c.registry = reg
	}
}

// WithCloneFn supplies the duplication function CloneAsset needs. Without
// one, CloneAsset always reports absent.
func WithCloneFn[A, D any](fn CloneFn[A]) Option[A, D] {
	return func(c *config[A, D]) {
		c.cloneFn = fn
	}
}

// WithDropFn supplies the callback invoked for every asset the store evicts
// without an explicit drop_fn argument, i.e. via Process rather than
// ProcessCustomDrop. UnloadAll does not invoke it: clearing presence and
// storage wholesale is not itself an eviction of individually tracked
// assets.
func WithDropFn[A, D any](fn DropFn[A]) Option[A, D] {
	return func(c *config[A, D]) {
		if fn != nil {
			c.dropFn = fn
		}
	}
}

func applyOptions[A, D any](cfg *config[A, D], opts []Option[A, D]) {
	for _, opt := range opts {
		opt(cfg)
	}
}
