package lock

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testConfig() Config {
	return Config{
		HeartbeatInterval: 20 * time.Millisecond,
		PollInterval:      10 * time.Millisecond,
		StaleAfter:        40 * time.Millisecond,
	}
}

func TestAcquireThenReleaseRemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sync.ffs_lock")
	identity := Identity{Host: "h", User: "u", ProcessID: 111}

	l, err := Acquire(context.Background(), path, identity, testConfig(), nil)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected lock file to exist, got %v", err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected lock file removed after release, stat err: %v", err)
	}
}

func TestAcquireIsRecursiveWithinProcess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sync.ffs_lock")
	identity := Identity{Host: "h", User: "u", ProcessID: 111}

	first, err := Acquire(context.Background(), path, identity, testConfig(), nil)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	second, err := Acquire(context.Background(), path, identity, testConfig(), nil)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if first != second {
		t.Fatal("expected the same shared Lock for the same canonical path")
	}

	if err := first.Release(); err != nil {
		t.Fatalf("first release: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected lock file to survive first release (still refcounted), got %v", err)
	}

	if err := second.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected lock file removed after last release")
	}
}

func TestAcquireRecoversFromStaleOwnedByUs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sync.ffs_lock")
	identity := Identity{Host: "h", User: "u", ProcessID: 222}

	// Simulate a prior crash by this exact process: a leftover lock file
	// whose payload names our own host/user/pid.
	stale := EncodePayload(Payload{GUID: uuid.New(), Host: identity.Host, User: identity.User, ProcessID: identity.ProcessID})
	if err := os.WriteFile(path, stale, 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Acquire(context.Background(), path, identity, testConfig(), nil)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer l.Release()
}

func TestAcquireRecoversFromAbandonedLockByDeadProcess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sync.ffs_lock")
	identity := Identity{Host: "h", User: "u", ProcessID: 333}

	// A lock left by a different, now-dead process on the same
	// host/user (an implausibly high pid is never alive).
	dead := EncodePayload(Payload{GUID: uuid.New(), Host: identity.Host, User: identity.User, ProcessID: 1 << 30})
	if err := os.WriteFile(path, dead, 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Acquire(context.Background(), path, identity, testConfig(), nil)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer l.Release()

	if _, err := os.Stat(filepath.Join(dir, "Del.sync.ffs_lock")); !os.IsNotExist(err) {
		t.Errorf("expected secondary lock to be cleaned up, stat err: %v", err)
	}
}

func TestAcquireRespectsContextCancellationDuringWait(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sync.ffs_lock")
	holderIdentity := Identity{Host: "h", User: "u", ProcessID: uint64(os.Getpid())}
	waiterIdentity := Identity{Host: "h", User: "u", ProcessID: holderIdentity.ProcessID + 1}

	live := EncodePayload(Payload{GUID: uuid.New(), Host: holderIdentity.Host, User: holderIdentity.User, ProcessID: holderIdentity.ProcessID})
	if err := os.WriteFile(path, live, 0o644); err != nil {
		t.Fatal(err)
	}

	// A StaleAfter long enough that cancellation, not staleness, is what
	// ends the wait.
	config := Config{HeartbeatInterval: 20 * time.Millisecond, PollInterval: 10 * time.Millisecond, StaleAfter: 10 * time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)

	_, err := Acquire(ctx, path, waiterIdentity, config, nil)
	if err != ErrAcquireCancelled {
		t.Fatalf("got %v, want ErrAcquireCancelled", err)
	}
}

func TestAcquireWaitsThenRecoversWhenHeartbeatGoesStale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sync.ffs_lock")
	holderIdentity := Identity{Host: "h", User: "u", ProcessID: uint64(os.Getpid())}
	waiterIdentity := Identity{Host: "h", User: "u", ProcessID: holderIdentity.ProcessID + 1}

	// Write a lock payload naming a live pid (this test process) on the
	// same host/user as the waiter but a different pid, so the waiter
	// takes the "live, enter wait phase" branch rather than
	// stale-owned-by-us, then observes the heartbeat go stale.
	live := EncodePayload(Payload{GUID: uuid.New(), Host: holderIdentity.Host, User: holderIdentity.User, ProcessID: holderIdentity.ProcessID})
	if err := os.WriteFile(path, live, 0o644); err != nil {
		t.Fatal(err)
	}

	config := testConfig()
	done := make(chan error, 1)
	go func() {
		l, err := Acquire(context.Background(), path, waiterIdentity, config, nil)
		if err != nil {
			done <- err
			return
		}
		defer l.Release()
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("acquire: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("acquire did not converge after heartbeat staleness")
	}
}
