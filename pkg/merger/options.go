package merger

// Option is a functional option for configuring a Merger.
type Option func(*merger)

// WithoutKept drops unchanged entry subsets from plugin reports, leaving
// only actual additions and removals.
func WithoutKept() Option {
	return func(m *merger) {
		m.withoutKept = true
	}
}
