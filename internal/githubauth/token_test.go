package githubauth_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reposafe/reposafe/internal/githubauth"
)

const (
	testExplicitTokenConstant    = "explicit-token"
	testEnvironmentTokenConstant = "environment-token"
	testFallbackTokenConstant    = "fallback-token"
	testSubtestNameTemplate      = "%d_%s"
)

func TestResolveToken(testInstance *testing.T) {
	testCases := []struct {
		name          string
		explicitToken string
		environment   map[string]string
		expectedToken string
		expectedFound bool
	}{
		{
			name:          "explicit_token_wins",
			explicitToken: testExplicitTokenConstant,
			environment:   map[string]string{githubauth.EnvGitHubCLIToken: testEnvironmentTokenConstant},
			expectedToken: testExplicitTokenConstant,
			expectedFound: true,
		},
		{
			name:          "explicit_token_trimmed",
			explicitToken: "  " + testExplicitTokenConstant + "  ",
			expectedToken: testExplicitTokenConstant,
			expectedFound: true,
		},
		{
			name:          "cli_token_preferred_over_api_token",
			environment:   map[string]string{githubauth.EnvGitHubCLIToken: testEnvironmentTokenConstant, githubauth.EnvGitHubAPIToken: testFallbackTokenConstant},
			expectedToken: testEnvironmentTokenConstant,
			expectedFound: true,
		},
		{
			name:          "github_token_used_when_cli_token_absent",
			environment:   map[string]string{githubauth.EnvGitHubToken: testEnvironmentTokenConstant},
			expectedToken: testEnvironmentTokenConstant,
			expectedFound: true,
		},
		{
			name:          "api_token_used_last",
			environment:   map[string]string{githubauth.EnvGitHubAPIToken: testFallbackTokenConstant},
			expectedToken: testFallbackTokenConstant,
			expectedFound: true,
		},
		{
			name:          "blank_environment_value_skipped",
			environment:   map[string]string{githubauth.EnvGitHubCLIToken: "   "},
			expectedToken: "",
			expectedFound: false,
		},
		{
			name:          "no_token_available",
			expectedToken: "",
			expectedFound: false,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplate, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			for _, environmentVariableName := range []string{githubauth.EnvGitHubCLIToken, githubauth.EnvGitHubToken, githubauth.EnvGitHubAPIToken} {
				testInstance.Setenv(environmentVariableName, "")
			}
			for environmentVariableName, environmentValue := range testCase.environment {
				testInstance.Setenv(environmentVariableName, environmentValue)
			}

			resolvedToken, tokenFound := githubauth.ResolveToken(testCase.explicitToken)

			require.Equal(testInstance, testCase.expectedFound, tokenFound)
			require.Equal(testInstance, testCase.expectedToken, resolvedToken)
		})
	}
}
