package githubapi_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v82/github"
	"github.com/stretchr/testify/require"

	"github.com/reposafe/reposafe/internal/backup"
	"github.com/reposafe/reposafe/internal/githubapi"
)

const (
	testRepositoryListPathConstant = "/user/repos"
	testOlderRepositoryJSON        = `{"name":"beta","clone_url":"https://example.com/owner/beta.git","ssh_url":"git@example.com:owner/beta.git","private":false,"updated_at":"2024-01-01T10:00:00Z"}`
	testNewerRepositoryJSON        = `{"name":"alpha","clone_url":"https://example.com/owner/alpha.git","ssh_url":"git@example.com:owner/alpha.git","private":true,"updated_at":"2024-06-01T10:00:00Z"}`
)

func newTestLister(testInstance *testing.T, handler http.Handler) *githubapi.Lister {
	testInstance.Helper()

	server := httptest.NewServer(handler)
	testInstance.Cleanup(server.Close)

	client := github.NewClient(nil)
	baseURL, parseError := url.Parse(server.URL + "/")
	require.NoError(testInstance, parseError)
	client.BaseURL = baseURL

	return githubapi.NewListerWithClient(client)
}

func TestListRepositoriesSortsByLastUpdatedDescending(testInstance *testing.T) {
	handler := http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		require.Equal(testInstance, testRepositoryListPathConstant, request.URL.Path)
		responseWriter.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(responseWriter, "[%s,%s]", testOlderRepositoryJSON, testNewerRepositoryJSON)
	})

	lister := newTestLister(testInstance, handler)

	descriptors, listError := lister.ListRepositories(context.Background())
	require.NoError(testInstance, listError)
	require.Len(testInstance, descriptors, 2)
	require.Equal(testInstance, "alpha", descriptors[0].Name)
	require.Equal(testInstance, "beta", descriptors[1].Name)
	require.True(testInstance, descriptors[0].Private)
	require.False(testInstance, descriptors[1].Private)
	require.Equal(testInstance, "https://example.com/owner/alpha.git", descriptors[0].CloneURL)
	require.Equal(testInstance, "git@example.com:owner/alpha.git", descriptors[0].SSHURL)
	require.True(testInstance, descriptors[0].LastUpdatedAt.After(descriptors[1].LastUpdatedAt))
}

func TestListRepositoriesFollowsPagination(testInstance *testing.T) {
	handler := http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.Header().Set("Content-Type", "application/json")
		if request.URL.Query().Get("page") == "2" {
			fmt.Fprintf(responseWriter, "[%s]", testNewerRepositoryJSON)
			return
		}
		responseWriter.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=2>; rel="next"`, request.Host, testRepositoryListPathConstant))
		fmt.Fprintf(responseWriter, "[%s]", testOlderRepositoryJSON)
	})

	lister := newTestLister(testInstance, handler)

	descriptors, listError := lister.ListRepositories(context.Background())
	require.NoError(testInstance, listError)
	require.Len(testInstance, descriptors, 2)
	require.Equal(testInstance, "alpha", descriptors[0].Name)
	require.Equal(testInstance, "beta", descriptors[1].Name)
}

func TestListRepositoriesClassifiesFailures(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		statusCode           int
		expectAuthentication bool
	}{
		{name: "unauthorized", statusCode: http.StatusUnauthorized, expectAuthentication: true},
		{name: "forbidden", statusCode: http.StatusForbidden, expectAuthentication: true},
		{name: "server_error", statusCode: http.StatusInternalServerError, expectAuthentication: false},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			handler := http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
				responseWriter.Header().Set("Content-Type", "application/json")
				responseWriter.WriteHeader(testCase.statusCode)
				fmt.Fprint(responseWriter, `{"message":"nope"}`)
			})

			lister := newTestLister(testInstance, handler)

			descriptors, listError := lister.ListRepositories(context.Background())
			require.Error(testInstance, listError)
			require.Nil(testInstance, descriptors)

			if testCase.expectAuthentication {
				require.IsType(testInstance, githubapi.AuthenticationError{}, listError)
			} else {
				require.IsType(testInstance, githubapi.NetworkError{}, listError)
			}
		})
	}
}

func TestListRepositoriesReturnsDescriptorsCompatibleWithBackupTargets(testInstance *testing.T) {
	handler := http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(responseWriter, "[%s]", testNewerRepositoryJSON)
	})

	lister := newTestLister(testInstance, handler)

	descriptors, listError := lister.ListRepositories(context.Background())
	require.NoError(testInstance, listError)
	require.Len(testInstance, descriptors, 1)

	target := backup.NewBackupTarget("/backups", descriptors[0])
	require.Equal(testInstance, "/backups/private_repos", target.CategoryDirectory)
	require.Equal(testInstance, "/backups/private_repos/alpha", target.TargetDirectory)
}
