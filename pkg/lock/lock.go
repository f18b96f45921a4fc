package lock

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dothezz/foldersync/pkg/contextutil"
	"github.com/dothezz/foldersync/pkg/logging"
	"github.com/dothezz/foldersync/pkg/must"
	"github.com/dothezz/foldersync/pkg/timeutil"
)

// Config tunes the timing of the wait/heartbeat protocol (spec §4.7: owner
// heartbeats "every ~5s", waiter polls "every ~4s", staleness threshold
// "~30s"). Tests use short values; production callers should use
// DefaultConfig.
type Config struct {
	HeartbeatInterval time.Duration
	PollInterval      time.Duration
	StaleAfter        time.Duration
}

// DefaultConfig returns the timings spec §4.7 describes.
func DefaultConfig() Config {
	return Config{
		HeartbeatInterval: 5 * time.Second,
		PollInterval:      4 * time.Second,
		StaleAfter:        30 * time.Second,
	}
}

// maxAcquireAttempts bounds the abandoned-lock-recovery recursion so a
// pathological race (another process constantly refreshing a lock we judge
// stale) cannot spin this process forever.
const maxAcquireAttempts = 8

// identity describes the caller acquiring a lock (spec §4.7's payload:
// "host name, user id, session/process id"). Host/User would ordinarily
// come from os.Hostname/os.Getenv("USER"); ProcessID from os.Getpid — both
// are passed in explicitly so tests can simulate other machines/processes.
type Identity struct {
	Host      string
	User      string
	ProcessID uint64
}

// CurrentIdentity reports this process's own identity.
func CurrentIdentity() Identity {
	host, _ := os.Hostname()
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME")
	}
	return Identity{Host: host, User: user, ProcessID: uint64(os.Getpid())}
}

func (id Identity) sameMachineUser(other Identity) bool {
	return id.Host == other.Host && id.User == other.User
}

// Lock is a held directory lock, shared within this process by every
// caller that acquires the same canonical path (spec §4.7 "Recursive
// ownership within a process").
type Lock struct {
	path   string
	guid   uuid.UUID
	config Config
	logger *logging.Logger

	mutex sync.Mutex
	file  *os.File

	refCount int

	stop chan struct{}
	done chan struct{}
}

// Acquire acquires the lock file at path, blocking through the wait phase
// if another live instance currently holds it, and performing abandoned-lock
// recovery if it does not (spec §4.7). identity identifies the caller. ctx
// allows the wait phase to be interrupted early (spec §5's cooperative
// cancellation); pass context.Background() for an uninterruptible wait.
func Acquire(ctx context.Context, path string, identity Identity, config Config, logger *logging.Logger) (*Lock, error) {
	canonicalPath := canonicalize(path)

	// Acquisitions of the same canonical path from within this process are
	// serialized so that two concurrent callers never both observe an
	// empty registry and race to create the on-disk file (which the
	// stale-owned-by-us check would then misread as an abandoned lock left
	// by this very process, spec §4.7 step 1).
	mu := pathMutex(canonicalPath)
	mu.Lock()
	defer mu.Unlock()

	if existing := lookupByPath(canonicalPath); existing != nil {
		return existing, nil
	}

	file, guid, err := acquireFile(ctx, path, identity, config, logger, maxAcquireAttempts)
	if err != nil {
		return nil, err
	}

	l := &Lock{
		path:   path,
		guid:   guid,
		config: config,
		logger: logger,
		file:   file,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	register(canonicalPath, l)
	go l.heartbeat()

	return l, nil
}

var (
	pathMutexesGuard sync.Mutex
	pathMutexes      = make(map[string]*sync.Mutex)
)

func pathMutex(canonicalPath string) *sync.Mutex {
	pathMutexesGuard.Lock()
	defer pathMutexesGuard.Unlock()

	if m, ok := pathMutexes[canonicalPath]; ok {
		return m
	}
	m := &sync.Mutex{}
	pathMutexes[canonicalPath] = m
	return m
}

// Release decrements the lock's reference count, releasing the on-disk lock
// (deleting the file) once the last holder in this process releases it
// (spec §4.7 "Release").
func (l *Lock) Release() error {
	canonicalPath := canonicalize(l.path)
	if !release(l) {
		return nil
	}
	unregister(canonicalPath, l)

	close(l.stop)
	<-l.done

	l.mutex.Lock()
	defer l.mutex.Unlock()
	must.Close(l.file, l.logger)
	return os.Remove(l.path)
}

// heartbeat periodically appends a byte to the lock file so that waiters
// can observe this lock is still live (spec §4.7 "heartbeat"). It reset-
// and-drains a single timer each iteration, the same pattern the ambient
// timer helper exists for, rather than a ticker.
func (l *Lock) heartbeat() {
	defer close(l.done)

	timer := time.NewTimer(l.config.HeartbeatInterval)
	defer timeutil.StopAndDrainTimer(timer)

	for {
		select {
		case <-l.stop:
			return
		case <-timer.C:
			l.mutex.Lock()
			if _, err := l.file.Write([]byte{0}); err != nil && l.logger != nil {
				l.logger.Error(errors.Wrap(err, "lock heartbeat write failed"))
			}
			l.mutex.Unlock()
			timer.Reset(l.config.HeartbeatInterval)
		}
	}
}

func canonicalize(path string) string {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(absolute)); err == nil {
		return filepath.Join(resolved, filepath.Base(absolute))
	}
	return absolute
}
