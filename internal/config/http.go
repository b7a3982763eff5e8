package config

const (
	HCType     = "Content-Type"
	HAccept    = "Accept"
	HRequestID = "X-Request-Id"
	HUserAgent = "User-Agent"

	CTypeJSON = "application/json"
)
