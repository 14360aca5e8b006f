package envoyutil

import (
	"strings"

	resource "github.com/envoyproxy/go-control-plane/pkg/resource/v3"
	"github.com/envoyproxy/go-control-plane/pkg/wellknown"
)

const (
	TypeKey = "@type"

	httpConnectionManagerTypeMarker = "http_connection_manager"
)

func TypeUrl(obj Object) string {
	return GetString(obj, TypeKey, "")
}

func HasType(obj Object) bool {
	return Has(obj, TypeKey)
}

func IsRouteConfigurationType(obj Object) bool {
	return TypeUrl(obj) == resource.RouteType
}

func IsClusterLoadAssignmentType(obj Object) bool {
	return TypeUrl(obj) == resource.EndpointType
}

// SocketAddress renders an envoy Address as "<host>:<port>". The second
// return is false when the address has no socket_address.
func SocketAddress(address Object) (string, bool) {
	sa, ok := AsObject(address["socket_address"])
	if !ok {
		return "", false
	}
	return GetString(sa, "address", "") + ":" + GetString(sa, "port_value", ""), true
}

// HttpConnectionManager returns the HCM body of a network filter when the
// filter is an HTTP connection manager. A filter qualifies when its
// typed_config @type names the HCM extension or, lacking a typed_config
// @type, when the filter name is the well known HCM name.
func HttpConnectionManager(filter Object) (Object, bool) {
	typed := GetObject(filter, "typed_config")
	if typed != nil && HasType(typed) {
		if strings.Contains(TypeUrl(typed), httpConnectionManagerTypeMarker) {
			return typed, true
		}
		return nil, false
	}

	if GetString(filter, "name", "") != wellknown.HTTPConnectionManager {
		return nil, false
	}
	if typed != nil {
		return typed, true
	}
	if cfg := GetObject(filter, "config"); cfg != nil {
		return cfg, true
	}
	return Object{}, true
}

// ShortName is the last dot delimited segment of a qualified extension name.
func ShortName(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
