package api

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithDefaultMinROAS sets the threshold used when a request omits min_roas.
func WithDefaultMinROAS(v float64) Option {
	return func(s *Server) {
		if v >= 0 {
			s.defaultMinROAS = v
		}
	}
}

// WithTopN sets the default ranking size for GET /top.
func WithTopN(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithMaxTopLimit caps GET /top?limit.
func WithMaxTopLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxTopLimit = n
		}
	}
}
