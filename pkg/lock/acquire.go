package lock

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dothezz/foldersync/pkg/contextutil"
	"github.com/dothezz/foldersync/pkg/logging"
	"github.com/dothezz/foldersync/pkg/must"
	"github.com/dothezz/foldersync/pkg/timeutil"
)

// ErrAcquireExhausted is returned when abandoned-lock recovery could not
// converge within maxAcquireAttempts, most often because another live
// process keeps refreshing the lock we are contending for.
var ErrAcquireExhausted = errors.New("lock: acquire did not converge")

// ErrAcquireCancelled is returned when ctx is cancelled while Acquire is
// blocked in the wait phase (spec §5's cooperative cancellation).
var ErrAcquireCancelled = errors.New("lock: acquire cancelled")

// acquireFile implements spec §4.7's on-disk protocol: create the lock file
// exclusively; on "already exists", inspect the existing payload to decide
// between stale-owned-by-us (delete and retry), live (wait phase), or
// abandoned (secondary-lock recovery).
func acquireFile(ctx context.Context, path string, identity Identity, config Config, logger *logging.Logger, attemptsLeft int) (*os.File, uuid.UUID, error) {
	if contextutil.IsCancelled(ctx) {
		return nil, uuid.UUID{}, ErrAcquireCancelled
	}
	if attemptsLeft <= 0 {
		return nil, uuid.UUID{}, ErrAcquireExhausted
	}

	guid := uuid.New()
	file, err := createExclusive(path, identity, guid)
	if err == nil {
		return file, guid, nil
	}
	if !os.IsExist(err) {
		return nil, uuid.UUID{}, errors.Wrap(err, "unable to create lock file")
	}

	payload, size, readErr := readPayload(path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			// Released between our failed create and this read; just retry.
			return acquireFile(ctx, path, identity, config, logger, attemptsLeft-1)
		}
		// A corrupt existing lock file is treated the same as an abandoned
		// one, but its GUID can't be trusted for re-verification — the
		// secondary-lock protocol falls back to comparing size alone.
		if err := recoverAbandoned(ctx, path, config, logger, identity, payload, size, false); err != nil {
			return nil, uuid.UUID{}, err
		}
		return acquireFile(ctx, path, identity, config, logger, attemptsLeft-1)
	}

	switch {
	case identity.sameMachineUser(Identity{Host: payload.Host, User: payload.User}) && payload.ProcessID == identity.ProcessID:
		// Stale-owned-by-us (spec §4.7 step 1): this exact process already
		// left this lock file behind; it cannot be "live" from our own
		// point of view, so remove it and retry immediately.
		must.OSRemove(path, logger)
		return acquireFile(ctx, path, identity, config, logger, attemptsLeft-1)

	case identity.sameMachineUser(Identity{Host: payload.Host, User: payload.User}) && processAlive(payload.ProcessID):
		if err := waitForRelease(ctx, path, config, logger); err != nil {
			return nil, uuid.UUID{}, err
		}
		// waitForRelease also returns once the heartbeat has stalled for
		// StaleAfter; if the same lock is still in place, it is abandoned.
		if current, currentSize, err := readPayload(path); err == nil && current.GUID == payload.GUID {
			if err := recoverAbandoned(ctx, path, config, logger, identity, current, currentSize, true); err != nil {
				return nil, uuid.UUID{}, err
			}
		}
		return acquireFile(ctx, path, identity, config, logger, attemptsLeft-1)

	default:
		if err := recoverAbandoned(ctx, path, config, logger, identity, payload, size, true); err != nil {
			return nil, uuid.UUID{}, err
		}
		return acquireFile(ctx, path, identity, config, logger, attemptsLeft-1)
	}
}

func createExclusive(path string, identity Identity, guid uuid.UUID) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	payload := Payload{GUID: guid, Host: identity.Host, User: identity.User, ProcessID: identity.ProcessID}
	if _, err := file.Write(EncodePayload(payload)); err != nil {
		file.Close()
		os.Remove(path)
		return nil, err
	}
	return file, nil
}

func readPayload(path string) (Payload, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, 0, err
	}
	payload, err := DecodePayload(data)
	return payload, int64(len(data)), err
}

// waitForRelease implements spec §4.7's wait phase: poll the lock file's
// size (the heartbeat) every PollInterval; if it hasn't grown for
// StaleAfter, give up waiting and let the caller treat the lock as
// abandoned. ctx cancellation aborts the wait early (spec §5).
func waitForRelease(ctx context.Context, path string, config Config, logger *logging.Logger) error {
	lastSize, err := fileSize(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // released while we were deciding to wait
		}
		return err
	}
	lastChange := time.Now()

	timer := time.NewTimer(config.PollInterval)
	defer timeutil.StopAndDrainTimer(timer)

	for {
		select {
		case <-ctx.Done():
			return ErrAcquireCancelled
		case <-timer.C:
		}

		size, err := fileSize(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if size != lastSize {
			lastSize = size
			lastChange = time.Now()
			timer.Reset(config.PollInterval)
			continue
		}
		if time.Since(lastChange) >= config.StaleAfter {
			if logger != nil {
				logger.Infof("lock %s considered stale after %s without a heartbeat", path, config.StaleAfter)
			}
			return nil
		}
		timer.Reset(config.PollInterval)
	}
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// recoverAbandoned implements spec §4.7's secondary-lock recovery: acquire
// a lock named "Del.<original>" using this same protocol, re-verify the
// original is still exactly as stale as observed, delete it, then release
// the secondary lock. When payloadValid is false (the original payload was
// corrupt rather than merely stale), re-verification falls back to
// comparing size alone, since the original GUID can't be trusted.
func recoverAbandoned(ctx context.Context, path string, config Config, logger *logging.Logger, identity Identity, originalPayload Payload, originalSize int64, payloadValid bool) error {
	secondaryPath := filepath.Join(filepath.Dir(path), "Del."+filepath.Base(path))

	secondary, err := Acquire(ctx, secondaryPath, identity, config, logger)
	if err != nil {
		return errors.Wrap(err, "unable to acquire secondary lock for abandoned-lock recovery")
	}
	defer must.Release(secondary, logger)

	// Mandatory re-verification (spec §4.7): confirm the original lock
	// has not changed since we decided it was stale, to avoid racing with
	// a freshly installed lock.
	freshPayload, freshSize, readErr := readPayload(path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil // already gone; nothing to recover
		}
		if payloadValid {
			return errors.Wrap(readErr, "unable to re-read original lock during recovery")
		}
		// Still corrupt and still the same size as before: still stale.
		if freshSize != originalSize {
			return nil
		}
	} else if payloadValid && (freshPayload.GUID != originalPayload.GUID || freshSize != originalSize) {
		// Someone else refreshed or replaced the lock; let the caller
		// retry the whole acquire protocol from scratch.
		return nil
	} else if !payloadValid && freshSize != originalSize {
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "unable to remove abandoned lock file")
	}
	return nil
}
