package interfaces

import "net/http"

// HTTPClient performs outbound HTTPS requests. The Reddit service depends on
// this interface so the transport can be swapped without changing contracts.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
