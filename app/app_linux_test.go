//go:build linux

package app_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/momentics/zukou-go/api"
	"github.com/momentics/zukou-go/app"
	"github.com/momentics/zukou-go/capability"
	"github.com/momentics/zukou-go/fake"
	"github.com/momentics/zukou-go/internal/logger"
	"github.com/momentics/zukou-go/reactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type harness struct {
	app     *app.Application
	display *fake.Display
	queue   *fake.Queue
}

func newHarness(t *testing.T, globals []fake.Global, opts ...app.Option) *harness {
	t.Helper()
	d, err := fake.NewDisplay(globals...)
	require.NoError(t, err)
	q := fake.NewQueue()
	opts = append([]app.Option{
		app.WithDialer(func(string) (api.Display, error) { return d, nil }),
		app.WithQueueFactory(func() (reactor.Queue, error) { return q, nil }),
	}, opts...)
	h := &harness{app: app.New(opts...), display: d, queue: q}
	t.Cleanup(func() {
		_ = h.app.Close()
		_ = d.Close()
	})
	return h
}

func connected(t *testing.T, extra ...fake.Global) *harness {
	t.Helper()
	globals := append(fake.Globals(capability.Mandatory...), extra...)
	h := newHarness(t, globals)
	require.NoError(t, h.app.Connect("zigen-0"))
	return h
}

// displayFd is the descriptor the application registered for the socket.
func (h *harness) displayFd(t *testing.T) int {
	t.Helper()
	controls := h.queue.Controls()
	require.NotEmpty(t, controls)
	return controls[0].Fd
}

func (h *harness) stopWhenIdle() {
	h.queue.OnIdle = func() { h.app.Terminate(api.ExitSuccess) }
}

func TestConnect_AllMandatoryGlobals(t *testing.T) {
	h := connected(t)

	assert.Equal(t, app.StateRunning, h.app.State())
	for _, iface := range capability.Mandatory {
		p := h.app.Binding(iface)
		require.NotNil(t, p, iface)
		assert.Equal(t, iface, p.Interface())
	}
	assert.Equal(t, []string{"registry", "dispatch", "roundtrip"}, h.display.Calls())

	controls := h.queue.Controls()
	require.Len(t, controls, 1)
	assert.Equal(t, api.OpAdd, controls[0].Op)
	assert.Equal(t, api.EventIn, controls[0].Mask)
	assert.NotEqual(t, h.display.Fd(), controls[0].Fd, "socket is registered through a duplicate")

	flags, err := unix.FcntlInt(uintptr(controls[0].Fd), unix.F_GETFD, 0)
	require.NoError(t, err)
	assert.NotZero(t, flags&unix.FD_CLOEXEC)
}

func TestConnect_BindsAtAdvertisedVersion(t *testing.T) {
	globals := fake.Globals(capability.Mandatory...)
	globals[1].Version = 7
	h := newHarness(t, globals)
	require.NoError(t, h.app.Connect("zigen-0"))

	assert.Equal(t, uint32(7), h.app.Binding(capability.InterfaceSeat).Version())
}

func TestConnect_CreatesDataDevice(t *testing.T) {
	h := connected(t)

	dev := h.app.DataDevice()
	require.NotNil(t, dev)
	seat := h.app.Binding(capability.InterfaceSeat)
	manager := h.app.Binding(capability.InterfaceDataDeviceManager)

	var found bool
	for _, r := range h.display.Requests() {
		if r.Sender == manager.ID() && r.NewID == dev.Proxy().ID() {
			found = true
			assert.Equal(t, capability.OpDataDeviceManagerGetDataDevice, r.Opcode)
			assert.Equal(t, []any{seat}, r.Args)
		}
	}
	assert.True(t, found)
}

func TestConnect_MissingShell(t *testing.T) {
	var ifaces []string
	for _, iface := range capability.Mandatory {
		if iface != capability.InterfaceShell {
			ifaces = append(ifaces, iface)
		}
	}
	h := newHarness(t, fake.Globals(ifaces...))

	err := h.app.Connect("zigen-0")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnsupportedServer)

	var e *api.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, []string{capability.InterfaceShell}, e.Context["missing"])

	assert.Equal(t, app.StateUnconnected, h.app.State())
	assert.True(t, h.display.Closed())
	assert.Empty(t, h.queue.Controls(), "no queue is created for an unsupported server")
	assert.ErrorIs(t, h.app.Connect("zigen-0"), api.ErrInvalidState)
}

func TestConnect_SucceedsIffEveryMandatoryGlobalIsPresent(t *testing.T) {
	n := len(capability.Mandatory)
	for set := 0; set < 1<<n; set++ {
		ifaces := []string{"wl_output"}
		for i, iface := range capability.Mandatory {
			if set&(1<<i) != 0 {
				ifaces = append(ifaces, iface)
			}
		}
		h := newHarness(t, fake.Globals(ifaces...))

		err := h.app.Connect("zigen-0")
		if set == 1<<n-1 {
			assert.NoError(t, err, "set %06b", set)
		} else {
			assert.ErrorIs(t, err, api.ErrUnsupportedServer, "set %06b", set)
		}
	}
}

func TestConnect_UnknownGlobalsIgnored(t *testing.T) {
	h := connected(t, fake.Global{Name: 40, Interface: "wl_output", Version: 2})

	assert.Nil(t, h.app.Binding("wl_output"))
	assert.Empty(t, h.display.Proxies("wl_output"))
}

func TestConnect_RebindingIsLastWins(t *testing.T) {
	h := connected(t, fake.Global{Name: 50, Interface: capability.InterfaceSeat, Version: 4})

	seats := h.display.Proxies(capability.InterfaceSeat)
	require.Len(t, seats, 2)
	assert.Same(t, seats[1], h.app.Binding(capability.InterfaceSeat))
	assert.True(t, seats[0].Destroyed())
	assert.Equal(t, uint32(4), h.app.Binding(capability.InterfaceSeat).Version())
}

func TestConnect_DialFailure(t *testing.T) {
	a := app.New(app.WithDialer(func(string) (api.Display, error) {
		return nil, errors.New("connection refused")
	}))

	err := a.Connect("zigen-0")
	assert.ErrorIs(t, err, api.ErrConnection)
	assert.Equal(t, app.StateUnconnected, a.State())
	assert.ErrorIs(t, a.Connect("zigen-0"), api.ErrInvalidState)
}

func TestConnect_RealTransportUnreachable(t *testing.T) {
	a := app.New()
	err := a.Connect(t.TempDir() + "/no-such-socket")
	assert.ErrorIs(t, err, api.ErrConnection)
}

func TestConnect_RegistryFailure(t *testing.T) {
	h := newHarness(t, fake.Globals(capability.Mandatory...))
	h.display.RegistryErr = errors.New("no registry")

	assert.ErrorIs(t, h.app.Connect("zigen-0"), api.ErrConnection)
	assert.True(t, h.display.Closed())
}

func TestConnect_RoundtripFailure(t *testing.T) {
	h := newHarness(t, fake.Globals(capability.Mandatory...))
	h.display.RoundtripErr = errors.New("hangup")

	assert.ErrorIs(t, h.app.Connect("zigen-0"), api.ErrConnection)
}

func TestConnect_QueueFailure(t *testing.T) {
	d, err := fake.NewDisplay(fake.Globals(capability.Mandatory...)...)
	require.NoError(t, err)
	a := app.New(
		app.WithDialer(func(string) (api.Display, error) { return d, nil }),
		app.WithQueueFactory(func() (reactor.Queue, error) { return nil, errors.New("EMFILE") }),
	)

	err = a.Connect("zigen-0")
	assert.ErrorIs(t, err, api.ErrResource)
	assert.True(t, d.Closed())
	for _, p := range d.Proxies(capability.InterfaceCompositor) {
		assert.True(t, p.Destroyed())
	}
}

func TestRun_RejectedOutsideRunningState(t *testing.T) {
	a := app.New()
	status, err := a.Run()
	assert.Equal(t, api.ExitFailure, status)
	assert.ErrorIs(t, err, api.ErrInvalidState)

	h := connected(t)
	h.stopWhenIdle()
	status, err = h.app.Run()
	require.NoError(t, err)
	assert.Equal(t, api.ExitSuccess, status)
	assert.Equal(t, app.StateTerminated, h.app.State())

	_, err = h.app.Run()
	assert.ErrorIs(t, err, api.ErrInvalidState)
}

func TestRun_FlushesBeforeLooping(t *testing.T) {
	h := connected(t)
	h.display.ResetCalls()
	h.stopWhenIdle()

	_, err := h.app.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"flush"}, h.display.Calls())
}

func TestRun_WatchesWritableUntilBacklogDrains(t *testing.T) {
	h := connected(t)
	h.display.Queued = 4096
	fd := h.displayFd(t)

	h.queue.Push(fake.Ready{Fd: fd, Events: api.EventOut})
	h.queue.OnIdle = func() {
		if h.display.Queued > 0 {
			h.display.Queued = 0
			h.queue.Push(fake.Ready{Fd: fd, Events: api.EventOut})
			return
		}
		h.app.Terminate(api.ExitSuccess)
	}

	status, err := h.app.Run()
	require.NoError(t, err)
	assert.Equal(t, api.ExitSuccess, status)

	controls := h.queue.Controls()
	require.Len(t, controls, 3)
	assert.Equal(t, api.OpModify, controls[1].Op)
	assert.Equal(t, fd, controls[1].Fd)
	assert.Equal(t, api.EventIn|api.EventOut, controls[1].Mask)
	assert.Equal(t, api.OpModify, controls[2].Op)
	assert.Equal(t, api.EventIn, controls[2].Mask)
	assert.NotContains(t, h.display.Calls(), "read_events", "writability alone does not read")
}

func TestRun_TerminateBeforeRun(t *testing.T) {
	h := connected(t)
	h.app.Terminate(3)

	status, err := h.app.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, status)
	assert.Zero(t, h.queue.Waits())
}

func TestRun_TerminateInsideCallback(t *testing.T) {
	h := connected(t)
	r, _ := pipe(t)

	var calls int
	src := reactor.NewFDSource(r, api.EventIn, func(api.ReadyEvent) bool {
		calls++
		h.app.Terminate(7)
		return false
	})
	require.NoError(t, h.app.AddPollEvent(src))

	h.queue.Push(fake.Ready{Fd: r, Events: api.EventIn})
	h.queue.Push(fake.Ready{Fd: r, Events: api.EventIn})

	status, err := h.app.Run()
	require.NoError(t, err)
	assert.Equal(t, 7, status)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, h.queue.Pending(), "no batch after the terminating one")
}

func TestRun_FlushFailureDuringPoll(t *testing.T) {
	h := connected(t)
	h.display.FlushErrs = []error{nil, errors.New("EPIPE")}
	h.display.ResetCalls()

	fd := h.displayFd(t)
	h.queue.Push(fake.Ready{Fd: fd, Events: api.EventIn})
	h.queue.Push(fake.Ready{Fd: fd, Events: api.EventIn})

	status, err := h.app.Run()
	require.NoError(t, err)
	assert.Equal(t, api.ExitFailure, status)
	assert.Equal(t, []string{"flush", "prepare_read", "flush", "cancel_read"}, h.display.Calls())
	assert.NotContains(t, h.display.Calls(), "read_events")
	assert.Equal(t, 1, h.queue.Pending())
}

func TestRun_PrepareReadRetries(t *testing.T) {
	h := connected(t)
	h.display.PrepareReadErrs = []error{api.ErrRetry, api.ErrRetry, api.ErrRetry}
	h.display.ResetCalls()
	h.queue.Push(fake.Ready{Fd: h.displayFd(t), Events: api.EventIn})
	h.stopWhenIdle()

	status, err := h.app.Run()
	require.NoError(t, err)
	assert.Equal(t, api.ExitSuccess, status)
	assert.Equal(t, []string{
		"flush",
		"prepare_read", "dispatch_pending",
		"prepare_read", "dispatch_pending",
		"prepare_read", "dispatch_pending",
		"prepare_read", "flush", "read_events", "dispatch_pending", "flush",
	}, h.display.Calls())
}

func TestRun_RayActivatedOnce(t *testing.T) {
	h := connected(t)
	seat := h.app.Binding(capability.InterfaceSeat)
	assert.Nil(t, h.app.Ray())

	require.NoError(t, h.display.Emit(seat, capability.EvSeatCapabilities, uint32(0)))
	require.NoError(t, h.display.Emit(seat, capability.EvSeatCapabilities, uint32(capability.SeatCapabilityRay)))
	require.NoError(t, h.display.Emit(seat, capability.EvSeatCapabilities,
		uint32(capability.SeatCapabilityRay|capability.SeatCapabilityKeyboard)))
	h.queue.Push(fake.Ready{Fd: h.displayFd(t), Events: api.EventIn})
	h.stopWhenIdle()

	_, err := h.app.Run()
	require.NoError(t, err)

	rays := h.display.Proxies(capability.InterfaceRay)
	require.Len(t, rays, 1)
	require.NotNil(t, h.app.Ray())
	assert.Same(t, rays[0], h.app.Ray().Proxy())

	var getRay int
	for _, r := range h.display.Requests() {
		if r.Sender == seat.ID() && r.Opcode == capability.OpSeatGetRay {
			getRay++
		}
	}
	assert.Equal(t, 1, getRay)
}

func TestSetters_ForwardWhenPresent(t *testing.T) {
	a := app.New()
	a.SetRayLength(3)
	a.SetDataDeviceLength(3)

	h := connected(t)
	h.app.SetRayLength(2)
	assert.Nil(t, h.app.Ray())

	h.app.SetDataDeviceLength(1.5)
	assert.Equal(t, float32(1.5), h.app.DataDevice().Length())

	seat := h.app.Binding(capability.InterfaceSeat)
	require.NoError(t, h.display.Emit(seat, capability.EvSeatCapabilities, uint32(capability.SeatCapabilityRay)))
	h.queue.Push(fake.Ready{Fd: h.displayFd(t), Events: api.EventIn})
	h.stopWhenIdle()
	_, err := h.app.Run()
	require.NoError(t, err)

	h.app.SetRayLength(2)
	assert.Equal(t, float32(2), h.app.Ray().Length())
}

func TestShmFormatsRecorded(t *testing.T) {
	h := connected(t)
	shm := h.app.Binding(capability.InterfaceShm)
	for _, f := range []uint32{0, 1, 0} {
		require.NoError(t, h.display.Emit(shm, capability.EvShmFormat, f))
	}
	h.queue.Push(fake.Ready{Fd: h.displayFd(t), Events: api.EventIn})
	h.stopWhenIdle()
	_, err := h.app.Run()
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1}, h.app.Formats())
	assert.Equal(t, []uint32{0, 1}, h.app.DumpState()["shm.formats"])
}

func TestGlobalRemovalKeepsBindings(t *testing.T) {
	h := connected(t)
	seat := h.app.Binding(capability.InterfaceSeat)

	h.display.RemoveGlobal(2)
	_, err := h.display.Dispatch()
	require.NoError(t, err)

	assert.Same(t, seat, h.app.Binding(capability.InterfaceSeat))
	assert.False(t, h.display.Proxies(capability.InterfaceSeat)[0].Destroyed())
}

func TestAddPollEvent_RequiresConnection(t *testing.T) {
	a := app.New()
	err := a.AddPollEvent(reactor.NewFDSource(0, api.EventIn, nil))
	assert.ErrorIs(t, err, api.ErrInvalidState)
	assert.ErrorIs(t, a.Flush(), api.ErrInvalidState)
}

func TestFlush_Forwards(t *testing.T) {
	h := connected(t)
	h.display.ResetCalls()
	h.display.FlushErrs = []error{api.ErrIOFault}

	assert.ErrorIs(t, h.app.Flush(), api.ErrIOFault)
	assert.Equal(t, []string{"flush"}, h.display.Calls())
}

func TestClose_TearsDown(t *testing.T) {
	h := connected(t)
	fd := h.displayFd(t)
	bound := make(map[string]*fake.Proxy)
	for _, iface := range capability.Mandatory {
		bound[iface] = h.display.Proxies(iface)[0]
	}

	require.NoError(t, h.app.Close())
	require.NoError(t, h.app.Close())

	for iface, p := range bound {
		assert.True(t, p.Destroyed(), iface)
	}
	assert.True(t, h.display.Proxies(capability.InterfaceDataDevice)[0].Destroyed())
	assert.True(t, h.display.Closed())
	assert.True(t, h.queue.Closed())
	assert.Equal(t, app.StateTerminated, h.app.State())

	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	assert.ErrorIs(t, err, unix.EBADF, "duplicated socket is closed")
	assert.ErrorIs(t, h.app.Flush(), api.ErrInvalidState)
}

func TestDumpState(t *testing.T) {
	h := connected(t)
	state := h.app.DumpState()

	assert.Equal(t, h.app.ID(), state["app.instance"])
	assert.Equal(t, "running", state["app.state"])
	assert.Len(t, state["app.globals"], len(capability.Mandatory))
	assert.Equal(t, false, state["app.ray"])
	assert.Contains(t, state, "platform.cpus")
	assert.Contains(t, state, "metrics")

	h.app.RegisterProbe("custom", func() any { return 42 })
	assert.Equal(t, 42, h.app.DumpState()["custom"])
}

func TestInstancesAreIndependent(t *testing.T) {
	var buf bytes.Buffer
	a := app.New(app.WithLogger(logger.NewWithWriter(&buf, "client")))
	b := app.New()

	assert.NotEqual(t, a.ID(), b.ID())

	a.Terminate(1)
	assert.Contains(t, buf.String(), a.ID())
}

func pipe(t *testing.T) (r, w int) {
	t.Helper()
	var p [2]int
	require.NoError(t, unix.Pipe2(p[:], unix.O_CLOEXEC))
	t.Cleanup(func() {
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
	})
	return p[0], p[1]
}
