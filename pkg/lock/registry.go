package lock

import (
	"sync"

	"github.com/google/uuid"
)

// registry is the process-wide table of currently-held locks, keyed by GUID,
// plus a canonical-path alias map so that the same directory reached through
// a symbolic link resolves to the same shared holder rather than acquiring
// the on-disk lock twice from within one process (spec §4.7 "Recursive
// ownership within a process"). Aliases that are not symbolic links, such as
// a second mount point of the same filesystem, are not detected.
var (
	registryMutex sync.Mutex
	byGUID        = make(map[uuid.UUID]*Lock)
	pathToGUID    = make(map[string]uuid.UUID)
)

// lookupByPath returns the existing shared Lock for canonicalPath, if this
// process already holds it, incrementing its reference count.
func lookupByPath(canonicalPath string) *Lock {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	guid, ok := pathToGUID[canonicalPath]
	if !ok {
		return nil
	}
	l, ok := byGUID[guid]
	if !ok {
		delete(pathToGUID, canonicalPath)
		return nil
	}
	l.refCount++
	return l
}

// register records a newly-acquired lock under its GUID and path alias.
func register(canonicalPath string, l *Lock) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	l.refCount = 1
	byGUID[l.guid] = l
	pathToGUID[canonicalPath] = l.guid
}

// unregister removes l from the registry. It must be called only once the
// caller has confirmed, under registryMutex, that l's reference count has
// dropped to zero.
func unregister(canonicalPath string, l *Lock) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	delete(byGUID, l.guid)
	delete(pathToGUID, canonicalPath)
}

// release decrements l's reference count and reports whether it reached
// zero (meaning the caller must now perform the real on-disk release).
func release(l *Lock) bool {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	l.refCount--
	return l.refCount <= 0
}
