package backup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reposafe/reposafe/internal/backup"
	"github.com/reposafe/reposafe/internal/execshell"
)

const testVerificationTargetConstant = "/backups/public_repos/beta"

func TestIntegrityVerifierReportsCleanRepository(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{}
	verifier := backup.NewIntegrityVerifier(gitExecutor, zap.NewNop())

	verified := verifier.Verify(context.Background(), testVerificationTargetConstant)

	require.True(testInstance, verified)
	require.Len(testInstance, gitExecutor.recordedDetails, 1)
	require.Equal(testInstance, []string{"fsck"}, gitExecutor.recordedDetails[0].Arguments)
	require.Equal(testInstance, testVerificationTargetConstant, gitExecutor.recordedDetails[0].WorkingDirectory)
}

func TestIntegrityVerifierLogsCapturedStandardErrorOnFailure(testInstance *testing.T) {
	fsckFailure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 2, StandardError: "missing blob deadbeef"},
	}
	gitExecutor := &scriptedGitExecutor{failuresByFirst: map[string]error{"fsck": fsckFailure}}

	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	verifier := backup.NewIntegrityVerifier(gitExecutor, zap.New(observerCore))

	verified := verifier.Verify(context.Background(), testVerificationTargetConstant)

	require.False(testInstance, verified)
	entries := observedLogs.All()
	require.Len(testInstance, entries, 1)
	require.Equal(testInstance, zapcore.ErrorLevel, entries[0].Level)

	loggedFields := entries[0].ContextMap()
	require.Equal(testInstance, "missing blob deadbeef", loggedFields["stderr"])
	require.Equal(testInstance, testVerificationTargetConstant, loggedFields["target_directory"])
}

func TestIntegrityVerifierTreatsInvocationErrorAsFailure(testInstance *testing.T) {
	invocationFailure := execshell.CommandExecutionError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Cause:   context.DeadlineExceeded,
	}
	gitExecutor := &scriptedGitExecutor{failuresByFirst: map[string]error{"fsck": invocationFailure}}
	verifier := backup.NewIntegrityVerifier(gitExecutor, zap.NewNop())

	verified := verifier.Verify(context.Background(), testVerificationTargetConstant)

	require.False(testInstance, verified)
}
