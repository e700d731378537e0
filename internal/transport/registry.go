// internal/transport/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import "github.com/momentics/zukou-go/api"

// registry is the wl_registry of one connection.
type registry struct {
	d        *Display
	proxy    *proxy
	listener api.RegistryListener
}

func (r *registry) SetListener(l api.RegistryListener) { r.listener = l }

// Bind requests the global name at version and returns the new proxy.
func (r *registry) Bind(name uint32, iface string, version uint32) (api.Proxy, error) {
	p := r.d.newProxy(iface, version)
	if err := r.proxy.Request(opRegistryBind, name, iface, version, p.id); err != nil {
		delete(r.d.objects, p.id)
		return nil, err
	}
	return p, nil
}

func (r *registry) handle(msg *api.Message) {
	switch msg.Opcode {
	case evRegistryGlobal:
		name, iface, version := msg.Uint32(), msg.String(), msg.Uint32()
		if err := msg.Err(); err != nil {
			r.d.log.Warn().Err(err).Msg("malformed global event")
			return
		}
		if r.listener != nil {
			r.listener.Global(name, iface, version)
		}
	case evRegistryGlobalRemove:
		name := msg.Uint32()
		if msg.Err() == nil && r.listener != nil {
			r.listener.GlobalRemove(name)
		}
	}
}
