package utils

import (
	"time"
)

// ContextKey is the type used for request-scoped context values.
type ContextKey string

// Context keys populated by the handlers for every request
const (
	RequestIDKey ContextKey = "request_id"
	UserAgentKey ContextKey = "user_agent"
	IPAddressKey ContextKey = "ip_address"
	EndpointKey  ContextKey = "endpoint"
	TimeoutKey   ContextKey = "timeout"
	CancelKey    ContextKey = "cancel_func"
)

// Session constants
const (
	// SessionCookieName carries the opaque per-session identifier
	SessionCookieName = "street_session"

	// SessionIdleTTL is how long an idle session keeps its favourites (24 hours)
	SessionIdleTTL = 24 * time.Hour
)

// Map constants
const (
	// MapZoomLevel is the fixed zoom used by the per-row map reveal
	MapZoomLevel = 12
)

// Outbound lookup templates, parameterized only by the postcode with its
// spaces replaced by '+'. The destinations are opaque to this service.
const (
	LookupSchoolsURL      = "https://www.google.com/search?q=schools+near+%s"
	LookupHospitalsURL    = "https://www.google.com/search?q=hospitals+near+%s"
	LookupTrainsURL       = "https://www.google.com/search?q=train+stations+near+%s"
	LookupDevelopmentsURL = "https://www.google.com/search?q=future+developments+near+%s"
	LookupHMOLicensingURL = "https://www.google.com/search?q=HMO+licensing+%s"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
