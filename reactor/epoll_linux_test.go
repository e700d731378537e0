//go:build linux

package reactor_test

import (
	"testing"
	"time"

	"github.com/momentics/zukou-go/api"
	"github.com/momentics/zukou-go/reactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func pipe(t *testing.T) (r, w int) {
	t.Helper()
	var p [2]int
	require.NoError(t, unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC))
	return p[0], p[1]
}

func TestEpoll_PipeReadiness(t *testing.T) {
	m, err := reactor.NewEpoll()
	require.NoError(t, err)
	defer m.Close()

	r, w := pipe(t)
	defer unix.Close(w)

	var got []byte
	src := reactor.NewFDSource(r, api.EventIn, func(ev api.ReadyEvent) bool {
		buf := make([]byte, 16)
		n, _ := unix.Read(ev.Fd, buf)
		got = append(got, buf[:n]...)
		m.Terminate(7)
		return true
	}).Owned()
	require.NoError(t, m.AddPollEvent(src))

	_, err = unix.Write(w, []byte("ping"))
	require.NoError(t, err)

	status, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, 7, status)
	assert.Equal(t, "ping", string(got))
	assert.Zero(t, m.Len())
	assert.Equal(t, -1, src.Fd(), "owned descriptor closed on release")
}

func TestEpoll_TimerFires(t *testing.T) {
	m, err := reactor.NewEpoll()
	require.NoError(t, err)
	defer m.Close()

	fired := 0
	timer, err := reactor.NewTimerSource(time.Millisecond, time.Millisecond, func(exp uint64) bool {
		assert.Positive(t, exp)
		fired++
		if fired == 3 {
			m.Terminate(api.ExitSuccess)
			return true
		}
		return false
	})
	require.NoError(t, err)
	require.NoError(t, m.AddPollEvent(timer))

	status, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, api.ExitSuccess, status)
	assert.Equal(t, 3, fired)
	assert.Equal(t, -1, timer.Fd())
}

func TestEpoll_DuplicateRegistrationFails(t *testing.T) {
	m, err := reactor.NewEpoll()
	require.NoError(t, err)
	defer m.Close()

	r, w := pipe(t)
	defer unix.Close(r)
	defer unix.Close(w)

	require.NoError(t, m.AddPollEvent(reactor.NewFDSource(r, api.EventIn, nil)))
	err = m.AddPollEvent(reactor.NewFDSource(r, api.EventIn, nil))
	assert.ErrorIs(t, err, api.ErrResource)
	assert.Equal(t, 1, m.Len())
}

func TestDupCloexec(t *testing.T) {
	r, w := pipe(t)
	defer unix.Close(r)
	defer unix.Close(w)

	fd, err := reactor.DupCloexec(r)
	require.NoError(t, err)
	defer unix.Close(fd)

	assert.NotEqual(t, r, fd)
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	require.NoError(t, err)
	assert.NotZero(t, flags&unix.FD_CLOEXEC)
}

// replaceFd makes fd refer to the read end of a fresh pipe and returns its
// write end. The previous open file is closed, which removes any epoll
// registration made through fd.
func replaceFd(t *testing.T, fd int) int {
	t.Helper()
	r, w := pipe(t)
	require.NoError(t, unix.Dup3(r, fd, unix.O_CLOEXEC))
	require.NoError(t, unix.Close(r))
	return w
}

func watchdog(t *testing.T, m *reactor.Multiplexer) {
	t.Helper()
	timer, err := reactor.NewTimerSource(2*time.Second, 0, func(uint64) bool {
		m.Terminate(99)
		return true
	})
	require.NoError(t, err)
	require.NoError(t, m.AddPollEvent(timer))
}

func TestEpoll_RetireAfterDescriptorReuse(t *testing.T) {
	m, err := reactor.NewEpoll()
	require.NoError(t, err)
	defer m.Close()
	watchdog(t, m)

	r, w := pipe(t)
	defer unix.Close(w)

	var w2 int
	fired := 0
	first := reactor.NewFDSource(r, api.EventIn, func(api.ReadyEvent) bool {
		w2 = replaceFd(t, r)
		next := reactor.NewFDSource(r, api.EventIn, func(api.ReadyEvent) bool {
			fired++
			m.Terminate(9)
			return true
		}).Owned()
		require.NoError(t, m.AddPollEvent(next))
		_, err := unix.Write(w2, []byte("y"))
		require.NoError(t, err)
		return true
	})
	require.NoError(t, m.AddPollEvent(first))

	_, err = unix.Write(w, []byte("x"))
	require.NoError(t, err)

	status, err := m.Run()
	require.NoError(t, err)
	defer unix.Close(w2)
	assert.Equal(t, 9, status, "the replacement registration fired")
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, m.Len(), "only the watchdog is left")
}

func TestEpoll_AddOnReusedDescriptorEvictsStale(t *testing.T) {
	m, err := reactor.NewEpoll()
	require.NoError(t, err)
	defer m.Close()

	r, w := pipe(t)
	defer unix.Close(w)

	stale := 0
	require.NoError(t, m.AddPollEvent(reactor.NewFDSource(r, api.EventIn, func(api.ReadyEvent) bool {
		stale++
		return true
	})))

	w2 := replaceFd(t, r)
	defer unix.Close(w2)

	fresh := 0
	src := reactor.NewFDSource(r, api.EventIn, func(api.ReadyEvent) bool {
		fresh++
		m.Terminate(api.ExitSuccess)
		return true
	}).Owned()
	require.NoError(t, m.AddPollEvent(src))
	assert.Equal(t, 1, m.Len(), "one container per descriptor")

	_, err = unix.Write(w2, []byte("x"))
	require.NoError(t, err)

	_, err = m.Run()
	require.NoError(t, err)
	assert.Zero(t, stale)
	assert.Equal(t, 1, fresh)
	assert.Zero(t, m.Len())
}

func TestEpoll_ModifyKeepsOwnedDescriptorOpen(t *testing.T) {
	m, err := reactor.NewEpoll()
	require.NoError(t, err)
	defer m.Close()

	r, w := pipe(t)
	defer unix.Close(w)

	var seen uint32
	src := reactor.NewFDSource(r, api.EventIn, func(ev api.ReadyEvent) bool {
		seen = ev.Events
		m.Terminate(api.ExitSuccess)
		return true
	}).Owned()
	require.NoError(t, m.AddPollEvent(src))

	mod := src.WithOp(api.OpModify, api.EventIn|api.EventHup)
	require.NoError(t, m.AddPollEvent(mod))
	assert.Equal(t, 1, m.Len())

	_, err = unix.FcntlInt(uintptr(r), unix.F_GETFD, 0)
	require.NoError(t, err, "the watched descriptor is still open")

	// the original gave up ownership to the copy
	src.Release()
	_, err = unix.FcntlInt(uintptr(r), unix.F_GETFD, 0)
	require.NoError(t, err)

	_, err = unix.Write(w, []byte("x"))
	require.NoError(t, err)
	_, err = m.Run()
	require.NoError(t, err)
	assert.NotZero(t, seen&api.EventIn)
	assert.Equal(t, -1, mod.Fd(), "the copy closed it on retire")
}
