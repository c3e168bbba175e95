package connection

import "net/url"

// Endpoint scheme and path are fixed; only the host varies.
const (
	EndpointScheme = "ws"
	EndpointPath   = "/ws"
)

// Endpoint derives the device WebSocket URL from the page host.
func Endpoint(host string) string {
	u := url.URL{
		Scheme: EndpointScheme,
		Host:   host,
		Path:   EndpointPath,
	}
	return u.String()
}
