// File: capability/ray.go
// Author: momentics <momentics@gmail.com>

package capability

import "github.com/momentics/zukou-go/api"

// InterfaceRay is the interface name of ray objects.
const InterfaceRay = "zgn_ray"

// Ray is the directional pointer obtained from a seat.
type Ray struct {
	proxy  api.Proxy
	length float32
}

// NewRay asks seat for a ray object.
func NewRay(seat api.Proxy) (*Ray, error) {
	if seat == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "nil seat")
	}
	p, err := seat.Constructor(OpSeatGetRay, InterfaceRay, api.NewID{})
	if err != nil {
		return nil, api.WrapError(api.ErrCodeResource, "failed to create ray", err)
	}
	return &Ray{proxy: p}, nil
}

// Proxy returns the underlying protocol object.
func (r *Ray) Proxy() api.Proxy { return r.proxy }

// SetLength sets the length the ray is drawn with.
func (r *Ray) SetLength(length float32) { r.length = length }

// Length returns the last length set.
func (r *Ray) Length() float32 { return r.length }

// Destroy forgets the ray.
func (r *Ray) Destroy() {
	if r.proxy != nil {
		r.proxy.Destroy()
		r.proxy = nil
	}
}
