package cache

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys by
// export document version so entries from older versions are never read.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "export-1.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) ExportKey(inputHash string) string {
	return k.prefix + k.inner.ExportKey(inputHash)
}

func (k ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
