package parser

import (
	"fmt"
	"sort"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/port"
)

// ProviderFactory is a function that creates a CaseExtractor from a provider config.
type ProviderFactory func(cfg *config.ParserProviderConfig) (port.CaseExtractor, error)

// registry of parser provider factories, populated by init() in each provider package
// or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a parser provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// Providers lists the registered provider names.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewParser creates a CaseExtractor from a provider config using the registered factory.
func NewParser(cfg *config.ParserProviderConfig) (port.CaseExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s (registered: %v)", cfg.Provider, Providers())
	}
	return factory(cfg)
}

// NewFromConfig builds every configured provider in order. A single provider is
// returned as is; more than one is wrapped in a FallbackParser.
func NewFromConfig(cfg *config.ParserConfig) (port.CaseExtractor, error) {
	chain := cfg.Chain()
	extractors := make([]port.CaseExtractor, 0, len(chain))
	names := make([]string, 0, len(chain))
	for _, pc := range chain {
		if pc.APIKey == "" {
			return nil, fmt.Errorf("parser provider %s: api key is not set", pc.Provider)
		}
		ex, err := NewParser(pc)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, ex)
		names = append(names, pc.Provider)
	}
	if len(extractors) == 1 {
		return extractors[0], nil
	}
	return NewFallbackParser(extractors, names), nil
}
