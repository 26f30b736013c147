package githubapi

import "fmt"

const (
	authenticationErrorTemplateConstant = "github authentication rejected: %v"
	networkErrorTemplateConstant        = "github request failed: %v"
)

// AuthenticationError reports a credential rejected by the GitHub API.
type AuthenticationError struct {
	Cause error
}

// Error describes the authentication failure.
func (authenticationError AuthenticationError) Error() string {
	return fmt.Sprintf(authenticationErrorTemplateConstant, authenticationError.Cause)
}

// Unwrap exposes the underlying API error.
func (authenticationError AuthenticationError) Unwrap() error {
	return authenticationError.Cause
}

// NetworkError reports a transport or API failure other than rejected credentials.
type NetworkError struct {
	Cause error
}

// Error describes the request failure.
func (networkError NetworkError) Error() string {
	return fmt.Sprintf(networkErrorTemplateConstant, networkError.Cause)
}

// Unwrap exposes the underlying transport error.
func (networkError NetworkError) Unwrap() error {
	return networkError.Cause
}
