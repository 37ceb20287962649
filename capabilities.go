package vertexclaude

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/capabilities/vertex_anthropic.yaml
var vertexAnthropicCapabilitiesYAML []byte

// Capabilities Philosophy:
//
// This file provides MODEL METADATA for UX, pricing estimates, and
// informational purposes. It does NOT enforce validation - the platform API
// is the source of truth, and new model versions appear on Vertex faster
// than this file is updated.
//
// Library users can override the embedded data by:
//  1. Calling LoadCapabilitiesFromFile() with custom YAML
//  2. Calling RegisterPlatformCapabilities() programmatically

// PlatformCapabilities represents the capability configuration of one
// hosting platform (e.g. Anthropic Claude on Vertex AI).
type PlatformCapabilities struct {
	Version     string                     `yaml:"version"`      // Semantic version (e.g., "1.0.0")
	LastUpdated string                     `yaml:"last_updated"` // ISO 8601 date
	Platform    string                     `yaml:"platform"`
	Models      map[string]ModelCapability `yaml:"models"`
	Constraints PlatformConstraints        `yaml:"constraints"`
}

// ModelCapability represents the capabilities of a specific model
type ModelCapability struct {
	ContextWindow   int           `yaml:"context_window"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	Features        ModelFeatures `yaml:"features"`
	Pricing         PricingInfo   `yaml:"pricing"`
}

// ModelFeatures indicates which features a model supports
type ModelFeatures struct {
	Vision    bool `yaml:"vision"`
	Tools     bool `yaml:"tools"`
	Streaming bool `yaml:"streaming"`
}

// PricingInfo contains model pricing per million tokens
type PricingInfo struct {
	InputPer1M  float64 `yaml:"input_per_1m"`
	OutputPer1M float64 `yaml:"output_per_1m"`
}

// PlatformConstraints defines platform-wide parameter limits
type PlatformConstraints struct {
	TemperatureMin float64 `yaml:"temperature_min"`
	TemperatureMax float64 `yaml:"temperature_max"`
	TopPMin        float64 `yaml:"top_p_min"`
	TopPMax        float64 `yaml:"top_p_max"`
	TopKMin        int     `yaml:"top_k_min"`
	TopKMax        int     `yaml:"top_k_max"`
}

// CapabilityRegistry manages platform capabilities
type CapabilityRegistry struct {
	capabilities map[string]*PlatformCapabilities
	mu           sync.RWMutex
}

// PlatformVertexAnthropic is the key of the embedded capability set.
const PlatformVertexAnthropic = "vertex-anthropic"

var (
	globalRegistry     *CapabilityRegistry
	globalRegistryOnce sync.Once
)

// GetCapabilityRegistry returns the global capability registry (singleton)
func GetCapabilityRegistry() *CapabilityRegistry {
	globalRegistryOnce.Do(func() {
		globalRegistry = &CapabilityRegistry{
			capabilities: make(map[string]*PlatformCapabilities),
		}
		// Load embedded Vertex capabilities
		if err := globalRegistry.loadVertexAnthropicCapabilities(); err != nil {
			// Log error but don't panic - lookups will report missing capabilities
			fmt.Printf("Warning: failed to load Vertex Anthropic capabilities: %v\n", err)
		}
	})
	return globalRegistry
}

// loadVertexAnthropicCapabilities loads the embedded YAML
func (r *CapabilityRegistry) loadVertexAnthropicCapabilities() error {
	var caps PlatformCapabilities
	if err := yaml.Unmarshal(vertexAnthropicCapabilitiesYAML, &caps); err != nil {
		return fmt.Errorf("failed to unmarshal Vertex Anthropic capabilities: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities[PlatformVertexAnthropic] = &caps

	return nil
}

// GetPlatformCapabilities returns capabilities for a platform
func (r *CapabilityRegistry) GetPlatformCapabilities(platform string) (*PlatformCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps, ok := r.capabilities[platform]
	if !ok {
		return nil, fmt.Errorf("no capabilities found for platform: %s", platform)
	}
	return caps, nil
}

// GetModelCapability returns capabilities for a specific model
func (r *CapabilityRegistry) GetModelCapability(platform, model string) (*ModelCapability, error) {
	platformCaps, err := r.GetPlatformCapabilities(platform)
	if err != nil {
		return nil, err
	}

	modelCap, ok := platformCaps.Models[model]
	if !ok {
		return nil, fmt.Errorf("model %s not found for platform %s", model, platform)
	}
	return &modelCap, nil
}

// SupportsModel checks if a platform supports a specific model
func (r *CapabilityRegistry) SupportsModel(platform, model string) bool {
	_, err := r.GetModelCapability(platform, model)
	return err == nil
}

// SupportsTools checks if a model supports tools
func (r *CapabilityRegistry) SupportsTools(platform, model string) bool {
	modelCap, err := r.GetModelCapability(platform, model)
	if err != nil {
		return false
	}
	return modelCap.Features.Tools
}

// EstimateCost computes a dollar cost estimate for a token count pair.
func (r *CapabilityRegistry) EstimateCost(platform, model string, inputTokens, outputTokens int) (float64, error) {
	modelCap, err := r.GetModelCapability(platform, model)
	if err != nil {
		return 0, err
	}
	return float64(inputTokens)/1e6*modelCap.Pricing.InputPer1M +
		float64(outputTokens)/1e6*modelCap.Pricing.OutputPer1M, nil
}

// LoadCapabilitiesFromFile loads platform capabilities from a YAML file.
// This allows library users to override embedded capabilities with custom
// data. The file format matches the embedded YAML structure.
func (r *CapabilityRegistry) LoadCapabilitiesFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read capabilities file: %w", err)
	}

	var caps PlatformCapabilities
	if err := yaml.Unmarshal(data, &caps); err != nil {
		return fmt.Errorf("failed to unmarshal capabilities: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities[caps.Platform] = &caps

	return nil
}

// RegisterPlatformCapabilities programmatically registers platform
// capabilities. This allows library users to define capabilities in code
// rather than YAML.
func (r *CapabilityRegistry) RegisterPlatformCapabilities(platform string, caps *PlatformCapabilities) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities[platform] = caps
}

// LoadCapabilitiesFromFile is a convenience function that calls the global registry's LoadCapabilitiesFromFile.
func LoadCapabilitiesFromFile(path string) error {
	return GetCapabilityRegistry().LoadCapabilitiesFromFile(path)
}

// RegisterPlatformCapabilities is a convenience function that calls the global registry's RegisterPlatformCapabilities.
func RegisterPlatformCapabilities(platform string, caps *PlatformCapabilities) {
	GetCapabilityRegistry().RegisterPlatformCapabilities(platform, caps)
}
