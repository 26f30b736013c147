// Package githubapi provides the GitHub REST adapter used to enumerate the
// authenticated user's repositories.
package githubapi
