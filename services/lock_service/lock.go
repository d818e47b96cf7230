// Package lock_service serialises mutations that read and then write the same
// resource: bookings of one room, payments of one booking, a single task.
package lock_service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/utils"
)

// Locker hands out exclusive per-key locks. Lock blocks until the key is free
// or ctx is done; the returned func releases it and is safe to call once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func RoomKey(id uuid.UUID) string {
	return "room:" + id.String()
}

func BookingKey(id uuid.UUID) string {
	return "booking:" + id.String()
}

// TaskKey locks a housekeeping or maintenance task.
func TaskKey(kind string, id uuid.UUID) string {
	return kind + ":" + id.String()
}

// LockAll takes every key in sorted order so two callers locking overlapping
// sets cannot deadlock. On failure nothing stays held.
func LockAll(ctx context.Context, l Locker, keys ...string) (func(), error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	unlocks := make([]func(), 0, len(sorted))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	var prev string
	for i, key := range sorted {
		if i > 0 && key == prev {
			continue
		}
		prev = key
		unlock, err := l.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}

func lockTimeout(key string, err error) error {
	return fmt.Errorf("%w: could not lock %s: %v", utils.ErrConflict, key, err)
}
