package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyhub/internal/domain"
	"partyhub/internal/timer"
)

func newTestHub(t *testing.T, clock timer.Clock) *Hub {
	t.Helper()
	hub := NewHub(newTestRegistry(clock), clock, HubOptions{Room: testRoomSettings}, testLogger)
	t.Cleanup(hub.Close)
	return hub
}

func TestHub_CreateRoom(t *testing.T) {
	hub := newTestHub(t, timer.NewFake(epoch))

	room, err := hub.CreateRoom()
	require.NoError(t, err)

	code := room.GetRoomCode()
	assert.Len(t, code, DefaultRoomCodeLength)
	for _, c := range code {
		assert.True(t, strings.ContainsRune(RoomCodeChars, c), "unexpected character %q", c)
	}

	got, err := hub.GetRoom(code)
	require.NoError(t, err)
	assert.Same(t, room, got)
	assert.Equal(t, 1, hub.GetRoomCount())

	_, err = hub.GetRoom("NOPE00")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestHub_Counts(t *testing.T) {
	hub := newTestHub(t, timer.NewFake(epoch))

	first, err := hub.CreateRoom()
	require.NoError(t, err)
	second, err := hub.CreateRoom()
	require.NoError(t, err)

	_, err = first.AddPlayer("alice", "Alice")
	require.NoError(t, err)
	_, err = second.AddPlayer("bob", "Bob")
	require.NoError(t, err)
	_, err = second.AddPlayer("carol", "Carol")
	require.NoError(t, err)

	assert.Equal(t, 2, hub.GetRoomCount())
	assert.Equal(t, 3, hub.GetTotalPlayerCount())

	hub.DeleteRoom(first.GetRoomCode())
	assert.Equal(t, 1, hub.GetRoomCount())
	assert.Equal(t, 2, hub.GetTotalPlayerCount())
}

func TestHub_CleanupStaleRooms(t *testing.T) {
	clock := timer.NewFake(epoch)
	hub := newTestHub(t, clock)

	empty, err := hub.CreateRoom()
	require.NoError(t, err)
	occupied, err := hub.CreateRoom()
	require.NoError(t, err)
	_, err = occupied.AddPlayer("alice", "Alice")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	hub.cleanupStaleRooms()
	assert.Equal(t, 2, hub.GetRoomCount())

	clock.Advance(StaleRoomTimeout)
	hub.cleanupStaleRooms()
	assert.Equal(t, 1, hub.GetRoomCount())

	_, err = hub.GetRoom(empty.GetRoomCode())
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	_, err = hub.GetRoom(occupied.GetRoomCode())
	assert.NoError(t, err)
}
