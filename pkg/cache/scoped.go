package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one backend without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "netdraw:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey generates a prefixed document key.
func (k *ScopedKeyer) DocumentKey(setHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(setHash, opts)
}

// ReleaseKey generates a prefixed release key.
func (k *ScopedKeyer) ReleaseKey(owner, repo string) string {
	return k.prefix + k.inner.ReleaseKey(owner, repo)
}
