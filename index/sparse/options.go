package sparse

// DefaultDegree is the B-tree degree used when no option overrides it.
const DefaultDegree = 32

type options struct {
	degree int
}

// Option configures a MemMap.
type Option func(*options)

// WithDegree sets the degree of the backing B-tree. Each node holds between
// degree-1 and 2*degree-1 entries. Values below 2 are ignored.
func WithDegree(degree int) Option {
	return func(o *options) {
		if degree >= 2 {
			o.degree = degree
		}
	}
}
