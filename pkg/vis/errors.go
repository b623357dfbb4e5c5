package vis

import "errors"

var (
	// ErrMissingSign means sign-consistent styling was requested for an edge
	// that carries neither a sign nor a legacy interaction attribute.
	ErrMissingSign = errors.New("edge has no sign attribute")

	// ErrUnmappedColor means an edge attribute value has no entry in the
	// color table and the table has no default fallback.
	ErrUnmappedColor = errors.New("no color mapping and no default entry")

	// ErrUnknownNetworkType rejects an unrecognized network type selector.
	// Only returned under Options.Strict; the default is to fall back.
	ErrUnknownNetworkType = errors.New("unknown network type")
)
