package wets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T, opts ...Option) *Scheduler {
	t.Helper()
	s, err := New(opts...)
	require.NoError(t, err)
	return s
}

func TestAddEvent_RejectsInvalidParams(t *testing.T) {
	s := newTestScheduler(t, WithPriorityLevels(2))

	assert.ErrorIs(t, s.AddEvent(nil, 0, 1), ErrWrongParams)
	assert.ErrorIs(t, s.AddEvent(func(uint32) uint32 { return 0 }, 0, 0), ErrWrongParams)
	assert.ErrorIs(t, s.AddEvent(func(uint32) uint32 { return 0 }, 0, NoEvent), ErrWrongParams)
	assert.ErrorIs(t, s.AddEvent(func(uint32) uint32 { return 0 }, 5, 1), ErrWrongParams)
}

func TestAddEvent_DuplicateFlagRejected(t *testing.T) {
	s := newTestScheduler(t, WithPriorityLevels(1))
	cb := func(uint32) uint32 { return 0 }

	require.NoError(t, s.AddEvent(cb, 0, 1))
	assert.ErrorIs(t, s.AddEvent(cb, 0, 1), ErrEventJustSet)
}

func TestAddEvent_AllSlotsFillsStatusExactly(t *testing.T) {
	s := newTestScheduler(t, WithPriorityLevels(1))
	cb := func(uint32) uint32 { return 0 }

	for i := 0; i < EventsPerPriority; i++ {
		require.NoError(t, s.AddEvent(cb, 0, Flag(1<<uint(i))))
	}
	assert.True(t, s.IsAnyEvent())
	assert.Equal(t, uint32(0xFFFFFFFF), s.bank(0).status.Load())

	// At full capacity every possible flag shares at least one bit with
	// the now-saturated status word, so AddEvent always reports
	// ErrEventJustSet first; ErrEventBufferFull is reachable only below
	// full bit-width saturation. Freeing one slot and re-adding confirms
	// the table was genuinely at capacity, not merely reporting it.
	require.NoError(t, s.RemoveEvent(0, 1))
	assert.NoError(t, s.AddEvent(cb, 0, 1))
}

func TestEventBank_FirstFreeExhausted(t *testing.T) {
	b := newEventBank()
	cb := func(uint32) uint32 { return 0 }
	for i := range b.slots {
		b.slots[i] = eventSlot{flag: Flag(i + 1), cb: cb}
	}
	assert.Equal(t, -1, b.firstFree())
}

func TestRemoveEvent_NoMatchReturnsNotFound(t *testing.T) {
	s := newTestScheduler(t, WithPriorityLevels(1))
	assert.ErrorIs(t, s.RemoveEvent(0, 1), ErrNoEventFound)
}

// TestRemoveEvent_ClearsArgumentBitsNotSlotBits covers WETS_removeEvent
// (wets-event.c:181, "mEvents[priority].status &= ~event;"): when a
// slot's flag is a wider pattern than the caller's argument, only the
// argument's own bits are cleared from status, not the slot's full
// pattern — even though the slot itself is freed in full. This can leave
// an orphan bit in status for a bit the freed slot owned but the caller
// didn't name.
func TestRemoveEvent_ClearsArgumentBitsNotSlotBits(t *testing.T) {
	s := newTestScheduler(t, WithPriorityLevels(1))
	cb := func(uint32) uint32 { return 0 }

	require.NoError(t, s.AddEvent(cb, 0, 0x3)) // slot flag spans bits 0 and 1
	require.NoError(t, s.RemoveEvent(0, 0x1))  // argument names only bit 0

	// The slot is gone...
	assert.Equal(t, -1, s.bank(0).findSlot(0x3))
	// ...but status still carries bit 1, the slot's bit the argument never
	// named — an orphan bit, cleared lazily on the next dispatch scan.
	assert.Equal(t, uint32(0x2), s.bank(0).status.Load())
}

func TestIsEvent_LockFreeRead(t *testing.T) {
	s := newTestScheduler(t, WithPriorityLevels(1))
	cb := func(uint32) uint32 { return 0 }
	require.NoError(t, s.AddEvent(cb, 0, 4))

	assert.True(t, s.IsEvent(0, 4))
	assert.False(t, s.IsEvent(0, 8))
	assert.False(t, s.IsEvent(9, 4))
}

func TestRemoveAllEvents(t *testing.T) {
	s := newTestScheduler(t, WithPriorityLevels(2))
	cb := func(uint32) uint32 { return 0 }
	require.NoError(t, s.AddEvent(cb, 0, 1))
	require.NoError(t, s.AddEvent(cb, 1, 2))

	s.RemoveAllEvents()

	assert.False(t, s.IsAnyEvent())
}

func TestMostImportantLocked_PicksHighestBit(t *testing.T) {
	b := newEventBank()
	cb := func(uint32) uint32 { return 0 }
	b.slots[0] = eventSlot{flag: 1, cb: cb}
	b.slots[1] = eventSlot{flag: 1 << 5, cb: cb}
	b.status.Store((1) | (1 << 5))

	idx, bit, found := b.mostImportantLocked(nil)
	require.True(t, found)
	assert.Equal(t, 1, idx)
	assert.Equal(t, Flag(1<<5), bit)
}

func TestMostImportantLocked_ClearsOrphanBit(t *testing.T) {
	b := newEventBank()
	cb := func(uint32) uint32 { return 0 }
	// slot flag is a multi-bit pattern; isolating bit 3 alone from status
	// cannot exactly match it, producing an orphan bit at position 3.
	b.slots[0] = eventSlot{flag: (1 << 3) | (1 << 1), cb: cb}
	b.status.Store(1 << 3)

	var orphaned []Flag
	idx, _, found := b.mostImportantLocked(func(bit Flag) {
		orphaned = append(orphaned, bit)
	})

	assert.False(t, found)
	assert.Equal(t, -1, idx)
	assert.Equal(t, []Flag{1 << 3}, orphaned)
	assert.Equal(t, uint32(0), b.status.Load())
}

func TestMostImportantLocked_EmptyStatus(t *testing.T) {
	b := newEventBank()
	idx, bit, found := b.mostImportantLocked(nil)
	assert.False(t, found)
	assert.Equal(t, -1, idx)
	assert.Equal(t, Flag(0), bit)
}
