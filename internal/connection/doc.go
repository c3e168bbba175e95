// Package connection implements the Connection Bridge.
//
// The Bridge:
//   - Owns a single WebSocket connection to ws://<device host>/ws
//   - Reflects inbound {"status": ...} frames onto the indicator display
//   - Forwards {"action": ...} commands to the device
//   - Reconnects after a fixed 2s delay, forever, one attempt at a time
package connection
