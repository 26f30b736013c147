package backup

import (
	"context"
	"io/fs"
	"time"

	"github.com/reposafe/reposafe/internal/execshell"
)

// RepositoryLister queries the remote hosting service for the authenticated
// user's repositories, ordered by most-recently-updated first.
type RepositoryLister interface {
	ListRepositories(executionContext context.Context) ([]RepositoryDescriptor, error)
}

// GitExecutor exposes the subset of shell execution used by the backup command.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// MirrorSynchronizer brings one local clone in line with its remote counterpart.
type MirrorSynchronizer interface {
	Sync(executionContext context.Context, target BackupTarget) SyncResult
}

// IntegrityChecker verifies the object graph of a local clone directory.
type IntegrityChecker interface {
	Verify(executionContext context.Context, targetDirectory string) bool
}

// ConfirmationPrompter prompts the operator before any filesystem mutation.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// FileSystem provides the filesystem operations required by the backup run.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, permissions fs.FileMode) error
}

// DelayTimer suspends between repositories for rate limiting.
type DelayTimer interface {
	Delay(executionContext context.Context, duration time.Duration)
}

// SystemDelayTimer implements DelayTimer using the standard library clock.
type SystemDelayTimer struct{}

// Delay blocks for the requested duration or until the context is cancelled.
func (SystemDelayTimer) Delay(executionContext context.Context, duration time.Duration) {
	if duration <= 0 {
		return
	}
	delayTimer := time.NewTimer(duration)
	defer delayTimer.Stop()
	select {
	case <-delayTimer.C:
	case <-executionContext.Done():
	}
}
