package records

const (
	// DefaultLimit is the number of records compiled per call.
	DefaultLimit = 500
	// DefaultMaxDepth bounds the nesting of arrays and objects in a record.
	DefaultMaxDepth = 64
)

type options struct {
	limit     int
	maxDepth  int
	maxErrors int
}

type Option func(*options)

// Limit sets the number of records compiled; records past it are read
// and dropped. A negative limit compiles every record.
func Limit(n int) Option {
	return func(o *options) { o.limit = n }
}

func MaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// MaxErrors caps the diagnostics returned; 0 selects diag.DefaultCap.
func MaxErrors(n int) Option {
	return func(o *options) { o.maxErrors = n }
}
