package assetstore

// errors.go implements an error taxonomy distinguishing a failed asset
// conversion from a failed format-source fetch, built on
// github.com/gravitational/trace, the context-wrapping error library seen
// threaded through the gravitational-teleport example repo
// (`trace.Wrap(err, "...")`), adopted because plain errors.New cannot
// express context annotations composing across Asset(name)/Format(format)
// boundaries the way trace.Wrap does.
//
// © 2025 asset-store authors. MIT License.

import (
	"fmt"

	"github.com/gravitational/trace"
)

// ErrUnusedHandle marks a NewAsset load that finished while its Handle was
// already the only strong reference in existence. It is reported to the
// Tracker as a failure even though the asset is still committed to the
// store. The record's handle is released in P1, so the P2 sweep of the same
// tick finds the store's own handle unique and reclaims the slot: the asset
// is no longer present once that Process call returns.
type ErrUnusedHandle struct {
	ID uint32
}

func (e *ErrUnusedHandle) Error() string {
	return fmt.Sprintf("asset handle %d has no external strong reference", e.ID)
}

// wrapAssetErr annotates err with the asset name it failed to produce.
func wrapAssetErr(err error, name string) error {
	if err == nil {
		return nil
	}
	return trace.Wrap(err, "asset %q", name)
}

// wrapFormatErr annotates err with the reload format that failed.
func wrapFormatErr(err error, format string) error {
	if err == nil {
		return nil
	}
	return trace.Wrap(err, "format %q", format)
}

// errInvalidHandleReplace is raised via panic when Replace is called
// against an id the store does not currently hold an asset for; Replace on
// an unoccupied id is fatal in the caller's scope.
func errInvalidHandleReplace(id uint32) error {
	return trace.BadParameter("assetstore: replace called on unoccupied asset id %d", id)
}
