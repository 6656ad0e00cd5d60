package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The serve mode uses this so documents uploaded by different clients
// never share cache entries with the CLI.
//
// Example usage:
//
//	// Server-side keys for uploaded documents
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
//
//	// Plain keys for local CLI runs
//	localKeyer := NewDefaultKeyer()
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

// ReportKey generates a prefixed key for a build report.
func (k *ScopedKeyer) ReportKey(docHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(docHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered export artifact.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
