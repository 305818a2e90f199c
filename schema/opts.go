package schema

// DefaultMaxDepth bounds the nesting of Object and ObjectArray blocks.
const DefaultMaxDepth = 32

type options struct {
	maxDepth  int
	maxErrors int
}

type Option func(*options)

func MaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// MaxErrors caps the diagnostics returned; 0 selects diag.DefaultCap.
func MaxErrors(n int) Option {
	return func(o *options) { o.maxErrors = n }
}
