package backup

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/reposafe/reposafe/internal/execshell"
)

const (
	gitFsckArgumentConstant                  = "fsck"
	verificationSucceededLogMessageConstant  = "repository integrity verified"
	verificationFailedLogMessageConstant     = "repository integrity verification failed"
	verificationStandardErrorFieldConstant   = "stderr"
	verificationTargetDirectoryFieldConstant = "target_directory"
)

// IntegrityVerifier runs git fsck against local clone directories.
type IntegrityVerifier struct {
	gitExecutor GitExecutor
	logger      *zap.Logger
}

// NewIntegrityVerifier constructs an IntegrityVerifier from the provided collaborators.
func NewIntegrityVerifier(gitExecutor GitExecutor, logger *zap.Logger) *IntegrityVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntegrityVerifier{gitExecutor: gitExecutor, logger: logger}
}

// Verify reports whether the directory passes git fsck. All failures,
// including a missing directory or a failed invocation, yield false plus a
// log record; verification never aborts the surrounding run.
func (verifier *IntegrityVerifier) Verify(executionContext context.Context, targetDirectory string) bool {
	fsckDetails := execshell.CommandDetails{
		Arguments:        []string{gitFsckArgumentConstant},
		WorkingDirectory: targetDirectory,
	}

	executionResult, executionError := verifier.gitExecutor.ExecuteGit(executionContext, fsckDetails)
	if executionError != nil {
		verifier.logIntegrityFailure(targetDirectory, executionResult, executionError)
		return false
	}

	verifier.logger.Info(verificationSucceededLogMessageConstant,
		zap.String(verificationTargetDirectoryFieldConstant, targetDirectory),
	)
	return true
}

func (verifier *IntegrityVerifier) logIntegrityFailure(targetDirectory string, executionResult execshell.ExecutionResult, executionError error) {
	capturedStandardError := executionResult.StandardError
	failedCommand := execshell.CommandFailedError{}
	if errors.As(executionError, &failedCommand) {
		capturedStandardError = failedCommand.Result.StandardError
	}

	verifier.logger.Error(verificationFailedLogMessageConstant,
		zap.String(verificationTargetDirectoryFieldConstant, targetDirectory),
		zap.String(verificationStandardErrorFieldConstant, capturedStandardError),
		zap.Error(executionError),
	)
}
