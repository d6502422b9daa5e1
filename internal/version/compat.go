package version

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

// MinServiceVersion is the oldest backend release whose routes this client speaks
const MinServiceVersion = "1.0.0"

// RequiredRoutes are the analysis routes every backend must advertise
var RequiredRoutes = []string{
	types.PathSimilar,
	types.PathClassify,
	types.PathSentiment,
	types.PathFullAnalysis,
}

// Compatibility describes how a backend's banner matches this client
type Compatibility struct {
	ServiceVersion string
	Supported      bool     // version is at least MinServiceVersion
	MissingRoutes  []string // required routes absent from the banner
}

// OK reports whether the backend can serve every analysis
func (c Compatibility) OK() bool {
	return c.Supported && len(c.MissingRoutes) == 0
}

// Check compares the service banner against MinServiceVersion and RequiredRoutes.
// Banner entries look like "/classificar - Classificar texto"; only the path is compared.
func Check(info *types.ServiceInfo) Compatibility {
	if info == nil {
		return Compatibility{MissingRoutes: RequiredRoutes}
	}

	advertised := lo.Map(info.Endpoints, func(ep string, _ int) string {
		path, _, _ := strings.Cut(strings.TrimSpace(ep), " ")
		return path
	})

	version := strings.TrimPrefix(info.Version, "v")
	return Compatibility{
		ServiceVersion: version,
		Supported:      version != "" && !IsNewer(MinServiceVersion, version),
		MissingRoutes:  lo.Without(RequiredRoutes, advertised...),
	}
}

// IsNewer compares two semantic versions and returns true if latest > current
// Supports versions like "0.0.28", "1.2.3", "0.0.29-dev", etc.
func IsNewer(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	// Pad shorter version with zeros
	maxLen := max(len(latestParts), len(currentParts))
	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	for i := 0; i < maxLen; i++ {
		if latestParts[i] > currentParts[i] {
			return true
		}
		if latestParts[i] < currentParts[i] {
			return false
		}
	}

	return false
}

// parseVersion parses a version string into integer parts
// Handles pre-release versions by stripping everything after "-" or "+"
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		result = append(result, num)
	}

	return result
}
