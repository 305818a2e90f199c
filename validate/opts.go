package validate

// DefaultMaxDepth bounds the nesting of validated data.
const DefaultMaxDepth = 64

type options struct {
	strict    bool
	maxErrors int
	maxDepth  int
}

type Option func(*options)

// Strict reports data fields the schema does not declare.
func Strict(v bool) Option {
	return func(o *options) { o.strict = v }
}

// MaxErrors stops recording errors after n; 0 records all of them.
func MaxErrors(n int) Option {
	return func(o *options) { o.maxErrors = n }
}

// MaxDepth sets how deep data may nest, DefaultMaxDepth by default. Data
// nested deeper is reported once per cut and not validated.
func MaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}
