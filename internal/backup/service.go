package backup

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

const (
	repositoriesHeadingConstant         = "Repositories:"
	repositoryDisplayTemplateConstant   = "%s: %s (Last updated: %s)\n"
	repositoryDisplayTimeLayoutConstant = "2006-01-02 15:04:05"
	confirmationPromptConstant          = "Do you want to backup these repositories? (yes/no) "
	backupCanceledMessageConstant       = "Backup canceled."
	listingFailureWrapTemplateConstant  = "unable to list repositories: %w"

	categoryDirectoryPermissionsConstant = 0o755

	directoryCreationFailedLogMessageConstant = "category directory creation failed"
	runSummaryLogMessageConstant              = "backup run finished"
	categoryDirectoryLogFieldConstant         = "category_directory"
	clonedCountLogFieldConstant               = "cloned"
	updatedCountLogFieldConstant              = "updated"
	syncFailuresLogFieldConstant              = "sync_failures"
	verifiedCountLogFieldConstant             = "verified"
	verificationFailuresLogFieldConstant      = "verification_failures"
)

// RunOptions captures the per-invocation parameters of a backup run.
type RunOptions struct {
	BackupRoot       string
	RateLimitSeconds int
}

// Service orchestrates one backup run: list, confirm, then sync and verify
// each repository in turn.
type Service struct {
	lister       RepositoryLister
	synchronizer MirrorSynchronizer
	verifier     IntegrityChecker
	fileSystem   FileSystem
	prompter     ConfirmationPrompter
	delayTimer   DelayTimer
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(lister RepositoryLister, synchronizer MirrorSynchronizer, verifier IntegrityChecker, fileSystem FileSystem, prompter ConfirmationPrompter, delayTimer DelayTimer, outputWriter io.Writer, logger *zap.Logger) *Service {
	if delayTimer == nil {
		delayTimer = SystemDelayTimer{}
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		lister:       lister,
		synchronizer: synchronizer,
		verifier:     verifier,
		fileSystem:   fileSystem,
		prompter:     prompter,
		delayTimer:   delayTimer,
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// Run executes the backup workflow. Only a listing failure or a prompt I/O
// failure is returned; every per-repository failure is logged and the run
// continues with the next repository.
func (service *Service) Run(executionContext context.Context, options RunOptions) error {
	descriptors, listingError := service.lister.ListRepositories(executionContext)
	if listingError != nil {
		return fmt.Errorf(listingFailureWrapTemplateConstant, listingError)
	}

	service.displayRepositories(descriptors)

	confirmed, confirmationError := service.prompter.Confirm(confirmationPromptConstant)
	if confirmationError != nil {
		return confirmationError
	}
	if !confirmed {
		fmt.Fprintln(service.outputWriter, backupCanceledMessageConstant)
		return nil
	}

	summary := RunSummary{}
	for descriptorIndex, descriptor := range descriptors {
		service.backupRepository(executionContext, options, descriptor, &summary)

		isLastRepository := descriptorIndex == len(descriptors)-1
		if !isLastRepository && options.RateLimitSeconds > 0 {
			service.delayTimer.Delay(executionContext, time.Duration(options.RateLimitSeconds)*time.Second)
		}
	}

	service.logRunSummary(summary)
	return nil
}

func (service *Service) displayRepositories(descriptors []RepositoryDescriptor) {
	fmt.Fprintln(service.outputWriter, repositoriesHeadingConstant)
	for _, descriptor := range descriptors {
		fmt.Fprintf(service.outputWriter, repositoryDisplayTemplateConstant,
			descriptor.VisibilityLabel(),
			descriptor.Name,
			descriptor.LastUpdatedAt.Format(repositoryDisplayTimeLayoutConstant),
		)
	}
}

func (service *Service) backupRepository(executionContext context.Context, options RunOptions, descriptor RepositoryDescriptor, summary *RunSummary) {
	target := NewBackupTarget(options.BackupRoot, descriptor)

	directoryError := service.fileSystem.MkdirAll(target.CategoryDirectory, categoryDirectoryPermissionsConstant)
	if directoryError != nil {
		service.logger.Error(directoryCreationFailedLogMessageConstant,
			zap.String(categoryDirectoryLogFieldConstant, target.CategoryDirectory),
			zap.Error(directoryError),
		)
		summary.SyncFailures++
	} else {
		syncResult := service.synchronizer.Sync(executionContext, target)
		switch {
		case syncResult.Err != nil:
			summary.SyncFailures++
		case syncResult.Action == SyncActionClone:
			summary.Cloned++
		default:
			summary.Updated++
		}
	}

	// Verification runs even after a failed sync so corruption in a
	// pre-existing clone is still reported.
	if service.verifier.Verify(executionContext, target.TargetDirectory) {
		summary.Verified++
	} else {
		summary.VerificationFailures++
	}
}

func (service *Service) logRunSummary(summary RunSummary) {
	service.logger.Info(runSummaryLogMessageConstant,
		zap.Int(clonedCountLogFieldConstant, summary.Cloned),
		zap.Int(updatedCountLogFieldConstant, summary.Updated),
		zap.Int(syncFailuresLogFieldConstant, summary.SyncFailures),
		zap.Int(verifiedCountLogFieldConstant, summary.Verified),
		zap.Int(verificationFailuresLogFieldConstant, summary.VerificationFailures),
	)
}
