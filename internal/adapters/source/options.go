package source

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithStrictRows controls malformed-row handling. When strict, the first bad
// row fails the load with ErrInvalidInput. Otherwise bad rows are skipped and
// listed in Report.Rejected.
func WithStrictRows(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}
