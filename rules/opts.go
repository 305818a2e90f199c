package rules

type options struct {
	maxErrors int
}

type Option func(*options)

// MaxErrors caps the diagnostics returned; 0 selects diag.DefaultCap.
func MaxErrors(n int) Option {
	return func(o *options) { o.maxErrors = n }
}
