package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForCloneNamesRemoteAndTarget(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"lfs", "clone", "--recursive", "-c", "submodule.recurse=true", "https://example.com/owner/project.git", "/backups/public_repos/project"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Cloning https://example.com/owner/project.git into /backups/public_repos/project", message)
}

func TestBuildStartedMessageForFetchNamesWorkingDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--all", "--prune"},
			WorkingDirectory: "/backups/private_repos/project",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Fetching updates from all remotes in /backups/private_repos/project", message)
}

func TestBuildFailureMessageForFsckIncludesExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fsck"},
			WorkingDirectory: "/backups/public_repos/project",
		},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 2, StandardError: "missing blob"})

	require.Equal(t, "Repository integrity check failed in /backups/public_repos/project (exit code 2: missing blob)", message)
}

func TestBuildSuccessMessageForMergeNamesWorkingDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"merge"},
			WorkingDirectory: "/backups/public_repos/project",
		},
	}

	message := formatter.BuildSuccessMessage(command)

	require.Equal(t, "Merged fetched history in /backups/public_repos/project", message)
}

func TestBuildExecutionFailureMessageForUnknownSubcommandUsesGenericLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"status"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("executable not found"))

	require.Equal(t, "git status (in /workspace/repo) failed: executable not found", message)
}
