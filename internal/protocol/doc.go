// Package protocol defines the JSON frames exchanged with the LED device.
//
// Frames are flat JSON objects with a single field:
//   - Inbound status:   {"status": "red"}
//   - Outbound command: {"action": "red"}
//
// Labels are the fixed set red, green, blue, yellow. The device also reports
// "off", which decodes as a valid status that matches no label.
package protocol
