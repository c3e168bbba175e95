// Package panel serves the control panel over HTTP.
//
// Routes:
//   - GET  /                    control page with the four indicators
//   - POST /api/command/:label  forward a click to the device
//   - GET  /api/indicators      current indicator snapshot
//   - GET  /api/events          snapshot stream (Server-Sent Events)
//   - GET  /health              bridge health
package panel
