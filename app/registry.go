// File: app/registry.go
// Author: momentics <momentics@gmail.com>
//
// Global binding. Known interfaces are bound at the advertised version; a
// second advertisement of the same interface replaces the earlier binding.

package app

import (
	"github.com/momentics/zukou-go/api"
	"github.com/momentics/zukou-go/capability"
)

// binding is one bound global.
type binding struct {
	name    uint32
	version uint32
	proxy   api.Proxy
}

// registryListener routes registry events to the application without
// exporting the listener methods on Application.
type registryListener struct{ a *Application }

func (l registryListener) Global(name uint32, iface string, version uint32) {
	l.a.bindGlobal(name, iface, version)
}

func (l registryListener) GlobalRemove(name uint32) {
	// Bindings are kept; the server stops answering on a removed global.
	l.a.log.Debug().Uint32("name", name).Msg("global removed")
}

func (a *Application) bindGlobal(name uint32, iface string, version uint32) {
	if !capability.Known(iface) {
		a.log.Debug().Uint32("name", name).Str("interface", iface).Msg("global skipped")
		return
	}
	p, err := a.registry.Bind(name, iface, version)
	if err != nil {
		a.log.Error().Err(err).Str("interface", iface).Msg("bind failed")
		return
	}

	switch iface {
	case capability.InterfaceSeat:
		p.SetHandler(func(msg *api.Message) { a.handleSeatEvent(p, msg) })
	case capability.InterfaceShm:
		p.SetHandler(a.handleShmEvent)
	}

	if old := a.bindings[iface]; old != nil {
		a.log.Debug().Str("interface", iface).Uint32("old", old.name).Uint32("name", name).Msg("global rebound")
		old.proxy.Destroy()
	}
	a.bindings[iface] = &binding{name: name, version: version, proxy: p}
	a.log.Debug().Uint32("name", name).Str("interface", iface).Uint32("version", version).Msg("global bound")
}

func (a *Application) missingGlobals() []string {
	var missing []string
	for _, iface := range capability.Mandatory {
		if a.bindings[iface] == nil {
			missing = append(missing, iface)
		}
	}
	return missing
}

func (a *Application) handleSeatEvent(seat api.Proxy, msg *api.Message) {
	if msg.Opcode != capability.EvSeatCapabilities {
		return
	}
	caps := capability.SeatCapability(msg.Uint32())
	if err := msg.Err(); err != nil {
		a.log.Warn().Err(err).Msg("malformed seat capabilities")
		return
	}
	a.log.Debug().Stringer("capabilities", caps).Msg("seat capabilities")

	if caps.Has(capability.SeatCapabilityRay) && a.ray == nil {
		ray, err := capability.NewRay(seat)
		if err != nil {
			a.log.Error().Err(err).Msg("ray activation failed")
			return
		}
		a.ray = ray
		a.log.Info().Uint32("id", ray.Proxy().ID()).Msg("ray activated")
	}
}

func (a *Application) handleShmEvent(msg *api.Message) {
	if msg.Opcode != capability.EvShmFormat {
		return
	}
	format := msg.Uint32()
	if msg.Err() != nil {
		return
	}
	for _, f := range a.formats {
		if f == format {
			return
		}
	}
	a.formats = append(a.formats, format)
}
