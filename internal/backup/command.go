package backup

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reposafe/reposafe/internal/backup/filesystem"
	"github.com/reposafe/reposafe/internal/execshell"
	"github.com/reposafe/reposafe/internal/githubauth"
	"github.com/reposafe/reposafe/internal/utils"
	pathutils "github.com/reposafe/reposafe/internal/utils/path"
)

const (
	commandUseConstant   = "reposafe <access-token> [rate-limit-seconds]"
	commandShortConstant = "Back up the authenticated user's GitHub repositories to local disk"
	commandLongConstant  = `reposafe lists every repository owned by the authenticated user, asks for
confirmation, then clones new repositories and updates existing clones under
private_repos/ and public_repos/, verifying each local copy with git fsck.`

	maximumPositionalArgumentCountConstant = 2
	rateLimitArgumentIndexConstant         = 1

	errorMissingAccessToken          = "access token required: pass it as the first argument or set GH_TOKEN, GITHUB_TOKEN, or GITHUB_API_TOKEN"
	invalidRateLimitTemplateConstant = "invalid rate-limit-seconds value %q: %w"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the resolved backup configuration.
type ConfigurationProvider func() CommandConfiguration

// ListerFactory builds a RepositoryLister authenticated with the given token.
type ListerFactory func(accessToken string) RepositoryLister

// CommandBuilder assembles the backup cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	ListerFactory         ListerFactory
	Lister                RepositoryLister
	GitExecutor           GitExecutor
	FileSystem            FileSystem
	Prompter              ConfirmationPrompter
	Synchronizer          MirrorSynchronizer
	Verifier              IntegrityChecker
	DelayTimer            DelayTimer
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the cobra command for the backup workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentCountConstant),
		RunE:  builder.run,
	}

	command.SilenceUsage = true

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	accessToken, options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return executorError
	}

	lister, listerError := builder.resolveLister(accessToken)
	if listerError != nil {
		return listerError
	}

	fileSystem := builder.resolveFileSystem()
	synchronizer := builder.resolveSynchronizer(gitExecutor, fileSystem, logger)
	verifier := builder.resolveVerifier(gitExecutor, logger)
	prompter := builder.resolvePrompter(command)

	service := NewService(lister, synchronizer, verifier, fileSystem, prompter, builder.DelayTimer, command.OutOrStdout(), logger)
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (string, RunOptions, error) {
	configuration := builder.resolveConfiguration()

	explicitToken := ""
	if len(arguments) > 0 {
		explicitToken = arguments[0]
	}
	accessToken, tokenFound := githubauth.ResolveToken(explicitToken)
	if !tokenFound {
		if helpError := builder.displayCommandHelp(command); helpError != nil {
			return "", RunOptions{}, helpError
		}
		return "", RunOptions{}, errors.New(errorMissingAccessToken)
	}

	rateLimitSeconds := configuration.RateLimitSeconds
	if len(arguments) > rateLimitArgumentIndexConstant {
		parsedRateLimit, parseError := strconv.Atoi(arguments[rateLimitArgumentIndexConstant])
		if parseError != nil {
			return "", RunOptions{}, fmt.Errorf(invalidRateLimitTemplateConstant, arguments[rateLimitArgumentIndexConstant], parseError)
		}
		rateLimitSeconds = parsedRateLimit
	}

	backupRoot := pathutils.NewHomeExpander().Expand(configuration.Root)

	options := RunOptions{
		BackupRoot:       backupRoot,
		RateLimitSeconds: rateLimitSeconds,
	}

	return accessToken, options, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}
	return execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), builder.CommandEventsObserver)
}

func (builder *CommandBuilder) resolveLister(accessToken string) (RepositoryLister, error) {
	if builder.Lister != nil {
		return builder.Lister, nil
	}
	if builder.ListerFactory == nil {
		return nil, errors.New("repository lister not configured")
	}
	return builder.ListerFactory(accessToken), nil
}

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return filesystem.OSFileSystem{}
}

func (builder *CommandBuilder) resolveSynchronizer(gitExecutor GitExecutor, fileSystem FileSystem, logger *zap.Logger) MirrorSynchronizer {
	if builder.Synchronizer != nil {
		return builder.Synchronizer
	}
	return NewMirrorManager(gitExecutor, fileSystem, logger)
}

func (builder *CommandBuilder) resolveVerifier(gitExecutor GitExecutor, logger *zap.Logger) IntegrityChecker {
	if builder.Verifier != nil {
		return builder.Verifier
	}
	return NewIntegrityVerifier(gitExecutor, logger)
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) ConfirmationPrompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	return NewIOConfirmationPrompter(command.InOrStdin(), utils.NewFlushingWriter(command.OutOrStdout()))
}

func (builder *CommandBuilder) displayCommandHelp(command *cobra.Command) error {
	if command == nil {
		return nil
	}
	return command.Help()
}
