package githubapi

import (
	"context"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	"github.com/reposafe/reposafe/internal/backup"
)

const (
	repositoryPageSizeConstant = 100

	httpStatusUnauthorizedConstant = 401
	httpStatusForbiddenConstant    = 403
)

// Lister adapts the GitHub REST API to the backup.RepositoryLister contract.
type Lister struct {
	client *github.Client
}

// NewLister constructs a Lister authenticated with the provided access token.
func NewLister(accessToken string) *Lister {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	httpClient := oauth2.NewClient(context.Background(), tokenSource)
	return NewListerWithClient(github.NewClient(httpClient))
}

// NewListerWithClient constructs a Lister around an existing GitHub client.
func NewListerWithClient(client *github.Client) *Lister {
	return &Lister{client: client}
}

// ListRepositories returns every repository owned by the authenticated user,
// ordered by most-recently-updated first. Any API failure is fatal to the
// run and classified as AuthenticationError or NetworkError.
func (lister *Lister) ListRepositories(executionContext context.Context) ([]backup.RepositoryDescriptor, error) {
	listOptions := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: github.ListOptions{PerPage: repositoryPageSizeConstant},
	}

	descriptors := []backup.RepositoryDescriptor{}
	for {
		repositories, response, listError := lister.client.Repositories.ListByAuthenticatedUser(executionContext, listOptions)
		if listError != nil {
			return nil, classifyListError(listError)
		}

		descriptors = append(descriptors, descriptorsFromRepositories(repositories)...)

		if response == nil || response.NextPage == 0 {
			break
		}
		listOptions.Page = response.NextPage
	}

	backup.SortDescriptorsByLastUpdated(descriptors)
	return descriptors, nil
}

func descriptorsFromRepositories(repositories []*github.Repository) []backup.RepositoryDescriptor {
	descriptors := make([]backup.RepositoryDescriptor, 0, len(repositories))
	for _, repository := range repositories {
		if repository == nil {
			continue
		}
		descriptors = append(descriptors, backup.RepositoryDescriptor{
			Name:          repository.GetName(),
			CloneURL:      repository.GetCloneURL(),
			SSHURL:        repository.GetSSHURL(),
			Private:       repository.GetPrivate(),
			LastUpdatedAt: repository.GetUpdatedAt().Time,
		})
	}
	return descriptors
}

func classifyListError(listError error) error {
	if errorResponse, isErrorResponse := listError.(*github.ErrorResponse); isErrorResponse && errorResponse.Response != nil {
		statusCode := errorResponse.Response.StatusCode
		if statusCode == httpStatusUnauthorizedConstant || statusCode == httpStatusForbiddenConstant {
			return AuthenticationError{Cause: listError}
		}
	}
	return NetworkError{Cause: listError}
}
