package filesystem

const (
	// TemporaryNamePrefix is the file name prefix used for the temporary
	// files WriteFileAtomic creates. Traversal does not skip such files if a
	// crash leaves one behind; only a hard-filter mask can exclude them.
	TemporaryNamePrefix = ".foldersync-temporary-"
)
