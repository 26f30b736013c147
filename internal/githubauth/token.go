// Package githubauth resolves GitHub authentication tokens from command
// arguments and the process environment.
package githubauth

import (
	"os"
	"strings"
)

// Environment variable names consulted when no explicit token is supplied.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// ResolveToken returns the explicit token when present, otherwise the first
// non-empty token observed in the process environment.
func ResolveToken(explicitToken string) (string, bool) {
	trimmedExplicitToken := strings.TrimSpace(explicitToken)
	if len(trimmedExplicitToken) > 0 {
		return trimmedExplicitToken, true
	}

	for _, environmentVariableName := range tokenPreference {
		if environmentValue, exists := os.LookupEnv(environmentVariableName); exists {
			trimmedEnvironmentValue := strings.TrimSpace(environmentValue)
			if len(trimmedEnvironmentValue) > 0 {
				return trimmedEnvironmentValue, true
			}
		}
	}

	return "", false
}
