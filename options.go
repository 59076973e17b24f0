package ggmask

// MaskOption configures a Mask during creation.
//
// Example:
//
//	m := ggmask.NewMask(node, node, graphic,
//	    ggmask.WithNotifier(propagator),
//	    ggmask.WithShowMaskGraphic(false))
type MaskOption func(*maskOptions)

// maskOptions holds optional configuration for Mask creation.
type maskOptions struct {
	cache           *MaterialCache
	notifier        Notifier
	diagnostics     Diagnostics
	showMaskGraphic bool
}

// defaultMaskOptions returns the default mask options.
func defaultMaskOptions() maskOptions {
	return maskOptions{
		cache:           nil, // DefaultMaterialCache() at construction
		notifier:        nopNotifier{},
		diagnostics:     logDiagnostics{},
		showMaskGraphic: true,
	}
}

// WithMaterialCache sets the cache the mask acquires its stencil materials
// from. Masks sharing a cache share identical materials.
func WithMaterialCache(c *MaterialCache) MaskOption {
	return func(o *maskOptions) {
		o.cache = c
	}
}

// WithNotifier sets the collaborator told about stencil state changes.
// Without one, descendants are not invalidated automatically.
func WithNotifier(n Notifier) MaskOption {
	return func(o *maskOptions) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithDiagnostics sets the sink for non-fatal problems such as an exceeded
// stencil depth. The default reports through Logger().
func WithDiagnostics(d Diagnostics) MaskOption {
	return func(o *maskOptions) {
		if d != nil {
			o.diagnostics = d
		}
	}
}

// WithShowMaskGraphic sets whether the mask's own graphic is visible or
// only shapes the clip. The default is true.
func WithShowMaskGraphic(show bool) MaskOption {
	return func(o *maskOptions) {
		o.showMaskGraphic = show
	}
}
