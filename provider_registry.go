package vertexclaude

// ProviderID represents a unique provider identifier.
// Using a typed constant prevents typos and provides compile-time safety.
type ProviderID string

// Known provider identifiers
const (
	// ProviderVertexAPI is the raw HTTPS JSON API backend
	ProviderVertexAPI ProviderID = "vertex-api"

	// ProviderVertexSDK is the Anthropic SDK backend with Vertex auth
	ProviderVertexSDK ProviderID = "vertex-sdk"

	// ProviderLorem is the mock Lorem provider for testing
	ProviderLorem ProviderID = "lorem"
)

// String returns the string representation of the provider ID
func (p ProviderID) String() string {
	return string(p)
}

// IsValid returns true if the provider ID is a known provider
func (p ProviderID) IsValid() bool {
	switch p {
	case ProviderVertexAPI, ProviderVertexSDK, ProviderLorem:
		return true
	default:
		return false
	}
}
