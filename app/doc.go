// Package app
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Application ties a display connection, the globals bound on it and an
// event multiplexer into one run/terminate lifecycle:
//
//	a := app.New()
//	if err := a.Connect("zigen-0"); err != nil { ... }
//	defer a.Close()
//	status, _ := a.Run()
//
// Connect blocks until the server advertised its globals and fails unless
// every mandatory one is present. Run services the display socket and any
// source added with AddPollEvent until Terminate is called.
package app
