package backup

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/reposafe/reposafe/internal/execshell"
)

// SyncAction identifies which mirror path was taken for a repository.
type SyncAction string

// Mirror paths taken by Sync.
const (
	SyncActionClone  SyncAction = "clone"
	SyncActionUpdate SyncAction = "update"
)

// SyncResult reports the mirror path taken and any failure encountered.
type SyncResult struct {
	Action SyncAction
	Err    error
}

const (
	sshSchemeMarkerConstant = "ssh://"

	gitLFSArgumentConstant              = "lfs"
	gitCloneArgumentConstant            = "clone"
	gitRecursiveFlagConstant            = "--recursive"
	gitConfigFlagConstant               = "-c"
	gitSubmoduleRecurseSettingConstant  = "submodule.recurse=true"
	gitFetchArgumentConstant            = "fetch"
	gitFetchAllFlagConstant             = "--all"
	gitFetchPruneFlagConstant           = "--prune"
	gitMergeArgumentConstant            = "merge"
	cloneFailureLogMessageConstant      = "repository clone failed"
	updateFailureLogMessageConstant     = "repository update failed"
	repositoryLogFieldNameConstant      = "repository"
	targetDirectoryLogFieldNameConstant = "target_directory"
)

// MirrorManager clones absent repositories and updates existing clones.
type MirrorManager struct {
	gitExecutor GitExecutor
	fileSystem  FileSystem
	logger      *zap.Logger
}

// NewMirrorManager constructs a MirrorManager from the provided collaborators.
func NewMirrorManager(gitExecutor GitExecutor, fileSystem FileSystem, logger *zap.Logger) *MirrorManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MirrorManager{gitExecutor: gitExecutor, fileSystem: fileSystem, logger: logger}
}

// Sync clones the repository when the target directory is absent and updates
// the existing clone otherwise. Failures are logged and reported through the
// result, never propagated: one broken repository must not stop the run.
func (manager *MirrorManager) Sync(executionContext context.Context, target BackupTarget) SyncResult {
	if _, statError := manager.fileSystem.Stat(target.TargetDirectory); statError == nil {
		return manager.updateExistingClone(executionContext, target)
	}
	return manager.cloneRepository(executionContext, target)
}

func (manager *MirrorManager) cloneRepository(executionContext context.Context, target BackupTarget) SyncResult {
	remoteURL := selectRemoteURL(target.Descriptor)
	cloneDetails := execshell.CommandDetails{
		Arguments: []string{
			gitLFSArgumentConstant,
			gitCloneArgumentConstant,
			gitRecursiveFlagConstant,
			gitConfigFlagConstant,
			gitSubmoduleRecurseSettingConstant,
			remoteURL,
			target.TargetDirectory,
		},
	}

	if _, cloneError := manager.gitExecutor.ExecuteGit(executionContext, cloneDetails); cloneError != nil {
		manager.logger.Error(cloneFailureLogMessageConstant,
			zap.String(repositoryLogFieldNameConstant, target.Descriptor.Name),
			zap.String(targetDirectoryLogFieldNameConstant, target.TargetDirectory),
			zap.Error(cloneError),
		)
		return SyncResult{Action: SyncActionClone, Err: cloneError}
	}

	return SyncResult{Action: SyncActionClone}
}

func (manager *MirrorManager) updateExistingClone(executionContext context.Context, target BackupTarget) SyncResult {
	fetchDetails := execshell.CommandDetails{
		Arguments:        []string{gitFetchArgumentConstant, gitFetchAllFlagConstant, gitFetchPruneFlagConstant},
		WorkingDirectory: target.TargetDirectory,
	}
	if _, fetchError := manager.gitExecutor.ExecuteGit(executionContext, fetchDetails); fetchError != nil {
		return manager.reportUpdateFailure(target, fetchError)
	}

	mergeDetails := execshell.CommandDetails{
		Arguments:        []string{gitMergeArgumentConstant},
		WorkingDirectory: target.TargetDirectory,
	}
	if _, mergeError := manager.gitExecutor.ExecuteGit(executionContext, mergeDetails); mergeError != nil {
		return manager.reportUpdateFailure(target, mergeError)
	}

	return SyncResult{Action: SyncActionUpdate}
}

func (manager *MirrorManager) reportUpdateFailure(target BackupTarget, updateError error) SyncResult {
	manager.logger.Error(updateFailureLogMessageConstant,
		zap.String(repositoryLogFieldNameConstant, target.Descriptor.Name),
		zap.String(targetDirectoryLogFieldNameConstant, target.TargetDirectory),
		zap.Error(updateError),
	)
	return SyncResult{Action: SyncActionUpdate, Err: updateError}
}

// selectRemoteURL picks the SSH URL only when the SSH URL string itself
// contains the "ssh://" scheme marker, falling back to the HTTPS clone URL.
// GitHub reports scp-style SSH URLs (git@host:owner/name.git) without the
// marker, so the HTTPS URL is usually selected. The check is kept as-is for
// compatibility with existing backups.
func selectRemoteURL(descriptor RepositoryDescriptor) string {
	if strings.Contains(descriptor.SSHURL, sshSchemeMarkerConstant) {
		return descriptor.SSHURL
	}
	return descriptor.CloneURL
}
