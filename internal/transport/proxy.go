// internal/transport/proxy.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import "github.com/momentics/zukou-go/api"

// proxy is the client side of one protocol object.
type proxy struct {
	d       *Display
	id      uint32
	iface   string
	version uint32
	handler api.EventHandler
}

func (p *proxy) ID() uint32                    { return p.id }
func (p *proxy) Interface() string             { return p.iface }
func (p *proxy) Version() uint32               { return p.version }
func (p *proxy) SetHandler(h api.EventHandler) { p.handler = h }

func (p *proxy) Request(opcode uint16, args ...any) error {
	return p.d.marshal(p.id, opcode, args)
}

func (p *proxy) Constructor(opcode uint16, iface string, args ...any) (api.Proxy, error) {
	child := p.d.newProxy(iface, p.version)
	wire := make([]any, len(args))
	found := false
	for i, a := range args {
		if _, ok := a.(api.NewID); ok && !found {
			wire[i] = child.id
			found = true
			continue
		}
		wire[i] = a
	}
	if !found {
		delete(p.d.objects, child.id)
		return nil, api.NewError(api.ErrCodeInvalidArgument, "constructor request without new id").
			WithContext("interface", iface)
	}
	if err := p.d.marshal(p.id, opcode, wire); err != nil {
		delete(p.d.objects, child.id)
		return nil, err
	}
	return child, nil
}

func (p *proxy) Destroy() {
	p.handler = nil
	if p.id != displayID {
		delete(p.d.objects, p.id)
	}
}
