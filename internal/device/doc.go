// Package device simulates the LED strip firmware on the network.
//
// The simulator keeps a single strip state and exposes the two control paths
// the hardware offers:
//
//   - a WebSocket endpoint at /ws that accepts {"action":"<label>"} frames and
//     broadcasts {"status":"<state>"} to every connected client after each
//     command
//   - a UDP listener accepting 2-byte packets [0x4A, code]
//
// A command for the label that is already lit turns the strip off.
package device
