package version

import (
	"slices"
	"testing"

	"github.com/studiowebux/nlpbrowser/internal/types"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name     string
		latest   string
		current  string
		expected bool
	}{
		{"same version", "1.0.0", "1.0.0", false},
		{"patch upgrade", "1.0.1", "1.0.0", true},
		{"minor downgrade", "0.9.0", "1.0.0", false},
		{"major upgrade", "2.0.0", "1.4.2", true},
		{"multi-digit minor", "1.100.0", "1.99.0", true},
		{"different lengths", "1.0", "0.9.9", true},
		{"short equals padded", "1", "1.0.0", false},
		{"pre-release same base", "1.0.0-alpha", "1.0.0", false},
		{"build metadata", "1.0.1+build7", "1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNewer(tt.latest, tt.current); got != tt.expected {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.expected)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	allRoutes := []string{
		"/buscar_similares - Buscar textos similares",
		"/classificar - Classificar texto",
		"/sentimento - Analisar sentimento",
		"/analise_completa - Análise completa",
	}

	tests := []struct {
		name      string
		info      *types.ServiceInfo
		supported bool
		missing   []string
	}{
		{
			name:      "current backend",
			info:      &types.ServiceInfo{Version: "1.0.0", Endpoints: allRoutes},
			supported: true,
		},
		{
			name:      "v prefix",
			info:      &types.ServiceInfo{Version: "v1.2.0", Endpoints: allRoutes},
			supported: true,
		},
		{
			name:      "too old",
			info:      &types.ServiceInfo{Version: "0.9.0", Endpoints: allRoutes},
			supported: false,
		},
		{
			name:      "missing route",
			info:      &types.ServiceInfo{Version: "1.0.0", Endpoints: allRoutes[:3]},
			supported: true,
			missing:   []string{types.PathFullAnalysis},
		},
		{
			name:      "no version",
			info:      &types.ServiceInfo{Endpoints: allRoutes},
			supported: false,
		},
		{
			name:    "nil banner",
			missing: RequiredRoutes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.info)
			if got.Supported != tt.supported {
				t.Errorf("Supported = %v, want %v", got.Supported, tt.supported)
			}
			if len(got.MissingRoutes) != len(tt.missing) || !slices.Equal(got.MissingRoutes, tt.missing) && len(tt.missing) > 0 {
				t.Errorf("MissingRoutes = %v, want %v", got.MissingRoutes, tt.missing)
			}
			if got.OK() != (tt.supported && len(tt.missing) == 0) {
				t.Errorf("OK() = %v", got.OK())
			}
		})
	}
}
