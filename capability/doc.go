// Package capability
// Author: momentics <momentics@gmail.com>
//
// Client-side collaborators the application constructs once the server
// advertises what they need: the seat capability bits, the ray input object
// and the data device. Only the constructor requests are spoken here; the
// objects' own protocols are left to their users through Proxy().
package capability
