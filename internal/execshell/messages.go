package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitLFSSubcommandNameConstant   = "lfs"
	gitCloneSubcommandNameConstant = "clone"
	gitFetchSubcommandNameConstant = "fetch"
	gitMergeSubcommandNameConstant = "merge"
	gitFsckSubcommandNameConstant  = "fsck"

	lfsCloneIdentificationArgumentCountConstant = 2
	cloneArgumentMinimumCountConstant           = 4
)

const (
	gitCloneStartTemplateConstant            = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant          = "Cloned %s into %s"
	gitCloneFailureTemplateConstant          = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant = "Unable to clone %s into %s: %s"
	gitFetchStartTemplateConstant            = "Fetching updates from all remotes in %s"
	gitFetchSuccessTemplateConstant          = "Fetched updates from all remotes in %s"
	gitFetchFailureTemplateConstant          = "Failed to fetch updates in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant = "Unable to fetch updates in %s: %s"
	gitMergeStartTemplateConstant            = "Merging fetched history in %s"
	gitMergeSuccessTemplateConstant          = "Merged fetched history in %s"
	gitMergeFailureTemplateConstant          = "Failed to merge fetched history in %s (exit code %d%s)"
	gitMergeExecutionFailureTemplateConstant = "Unable to merge fetched history in %s: %s"
	gitFsckStartTemplateConstant             = "Checking repository integrity in %s"
	gitFsckSuccessTemplateConstant           = "Repository integrity confirmed in %s"
	gitFsckFailureTemplateConstant           = "Repository integrity check failed in %s (exit code %d%s)"
	gitFsckExecutionFailureTemplateConstant  = "Unable to check repository integrity in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandGit {
		return formatter.describeGitMessage(command, result, failure, stage)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	if formatter.isLFSCloneCommand(arguments) {
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[0])
	switch subcommand {
	case gitFetchSubcommandNameConstant:
		return formatter.describeWorkingDirectoryScopedMessage(command, result, failure, stage,
			gitFetchStartTemplateConstant, gitFetchSuccessTemplateConstant, gitFetchFailureTemplateConstant, gitFetchExecutionFailureTemplateConstant)
	case gitMergeSubcommandNameConstant:
		return formatter.describeWorkingDirectoryScopedMessage(command, result, failure, stage,
			gitMergeStartTemplateConstant, gitMergeSuccessTemplateConstant, gitMergeFailureTemplateConstant, gitMergeExecutionFailureTemplateConstant)
	case gitFsckSubcommandNameConstant:
		return formatter.describeWorkingDirectoryScopedMessage(command, result, failure, stage,
			gitFsckStartTemplateConstant, gitFsckSuccessTemplateConstant, gitFsckFailureTemplateConstant, gitFsckExecutionFailureTemplateConstant)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) isLFSCloneCommand(arguments []string) bool {
	if len(arguments) < lfsCloneIdentificationArgumentCountConstant {
		return false
	}
	primaryArgument := strings.TrimSpace(arguments[0])
	secondaryArgument := strings.TrimSpace(arguments[1])
	return primaryArgument == gitLFSSubcommandNameConstant && secondaryArgument == gitCloneSubcommandNameConstant
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < cloneArgumentMinimumCountConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	remoteURL := formatter.ensureValue(arguments[len(arguments)-2])
	targetDirectory := formatter.ensureValue(arguments[len(arguments)-1])

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneStartTemplateConstant, remoteURL, targetDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneSuccessTemplateConstant, remoteURL, targetDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneFailureTemplateConstant, remoteURL, targetDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, remoteURL, targetDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeWorkingDirectoryScopedMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
