package claims

import (
	"regexp"
	"strings"

	"github.com/jonwraymond/wascap/caperr"
)

// Well-known capability IDs.
const (
	CapMessaging    = "wascap:messaging"
	CapKeyValue     = "wascap:keyvalue"
	CapHTTPServer   = "wascap:http_server"
	CapHTTPClient   = "wascap:http_client"
	CapBlobstore    = "wascap:blobstore"
	CapEventStreams = "wascap:eventstreams"
	CapExtras       = "wascap:extras"
	CapLogging      = "wascap:logging"
)

var capabilityNames = map[string]string{
	CapMessaging:    "Messaging",
	CapKeyValue:     "K/V Store",
	CapHTTPServer:   "HTTP Server",
	CapHTTPClient:   "HTTP Client",
	CapBlobstore:    "Blob Store",
	CapEventStreams: "Event Streams",
	CapExtras:       "Extras",
	CapLogging:      "Logging",
}

// capability IDs are <namespace>:<name>
var capabilityPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*:[a-z0-9][a-z0-9_.-]*$`)

// ValidCapability reports whether id is a well-formed capability ID.
func ValidCapability(id string) bool {
	return capabilityPattern.MatchString(id)
}

// CapabilityName returns the friendly name of a well-known capability, or
// id itself for any other capability.
func CapabilityName(id string) string {
	if name, ok := capabilityNames[id]; ok {
		return name
	}
	return id
}

// Policy restricts which capabilities a verifier accepts.
//
// Patterns are exact IDs, "*", or a prefix ending in "*" (for example
// "wascap:*"). Denied takes precedence over Allowed; an empty Allowed
// list accepts every capability not denied.
type Policy struct {
	Allowed []string
	Denied  []string
}

// Permits reports whether the policy accepts capability id.
func (p Policy) Permits(id string) bool {
	for _, denied := range p.Denied {
		if matchPattern(denied, id) {
			return false
		}
	}

	if len(p.Allowed) == 0 {
		return true
	}
	for _, allowed := range p.Allowed {
		if matchPattern(allowed, id) {
			return true
		}
	}
	return false
}

// Check returns an InvalidCapability error if any of caps is malformed or
// not permitted.
func (p Policy) Check(caps []string) error {
	for _, id := range caps {
		if !ValidCapability(id) || !p.Permits(id) {
			return caperr.CapabilityError()
		}
	}
	return nil
}

func matchPattern(pattern, value string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(value, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == value
}
