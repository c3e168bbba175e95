// Package indicator holds the state of the four panel indicators.
//
// Exactly one indicator, or none, is active at a time. Only a device status
// changes the board: all indicators are cleared and the one matching the
// status label is activated. Statuses that match no label (including the
// device's "off") leave the board cleared.
package indicator
