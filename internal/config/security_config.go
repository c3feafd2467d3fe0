package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps mux route names to their required security
// level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Public
	"Health":          SecurityPublic,
	"CreateSession":   SecurityPublic,
	"GetStats":        SecurityPublic,
	"GetResource":     SecurityPublic,
	"ListResources":   SecurityPublic,
	"QuoteEscrow":     SecurityPublic,
	"GetRental":       SecurityPublic,
	"RentalAddress":   SecurityPublic,
	"EscrowAddress":   SecurityPublic,
	"ResourceAddress": SecurityPublic,
	"GetAccount":      SecurityPublic,
	"ListTransfers":   SecurityPublic,

	// Access Protected
	"CreateResource": SecurityAccess,
	"CreateRental":   SecurityAccess,
	"CompleteRental": SecurityAccess,
	"DisputeRental":  SecurityAccess,
	"ResolveDispute": SecurityAccess,
	"ListMyRentals":  SecurityAccess,
	"OpenAccount":    SecurityAccess,
	"Transfer":       SecurityAccess,
	"Faucet":         SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
