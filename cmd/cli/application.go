package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/complykit/pycomply/internal/checker"
	"github.com/complykit/pycomply/internal/execshell"
	"github.com/complykit/pycomply/internal/githubauth"
	"github.com/complykit/pycomply/internal/manifest"
	"github.com/complykit/pycomply/internal/report"
	"github.com/complykit/pycomply/internal/rules"
	"github.com/complykit/pycomply/internal/selftest"
	"github.com/complykit/pycomply/internal/source"
	"github.com/complykit/pycomply/internal/utils"
)

const (
	applicationNameConstant                 = "pycomply <repository>"
	applicationShortDescriptionConstant     = "Check Python repository compliance with modern standards"
	applicationLongDescriptionConstant      = "pycomply audits a local directory or GitHub repository against modern Python project standards and reports a compliance score."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	authFlagNameConstant                    = "auth"
	authFlagUsageConstant                   = "Authentication method for GitHub repos: auto, token, or gh."
	verboseFlagNameConstant                 = "verbose"
	verboseFlagUsageConstant                = "Show all checks (not just failures)."
	jsonFlagNameConstant                    = "json"
	jsonFlagUsageConstant                   = "Output in JSON format."
	outputFlagNameConstant                  = "output"
	outputFlagUsageConstant                 = "Save report to file."
	testFlagNameConstant                    = "test"
	testFlagUsageConstant                   = "Run embedded self-tests instead of scanning."
	commonLogLevelConfigKeyConstant         = "common.log_level"
	commonLogFormatConfigKeyConstant        = "common.log_format"
	checkerAuthConfigKeyConstant            = "checker.auth"
	checkerTimeoutConfigKeyConstant         = "checker.timeout_seconds"
	checkerKeywordsConfigKeyConstant        = "checker.required_keywords"
	environmentPrefixConstant               = "PYCOMPLY"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	defaultConfigurationSearchPathConstant  = "."
	missingRepositoryArgumentMessage        = "repository argument is required (unless using --test)"
	scanStartingMessageConstant             = "scan starting"
	scanTargetFieldConstant                 = "target"
	manifestFileNameConstant                = "pyproject.toml"
	manifestParseErrorTemplateConstant      = "Error parsing pyproject.toml: %v\n"
	authenticationErrorTemplateConstant     = "authentication setup failed: %w"
	remoteURLTemplateConstant               = "https://github.com/%s"
	reportFilePermissionsConstant           = 0o644
	persistedReportHeaderTemplateConstant   = "Compliance Report for %s\nScore: %.1f%%\nStatus: %s\n\n"
	persistedCheckLineTemplateConstant      = "[%s] %s: %s\n"
	persistedPassLabelConstant              = "PASS"
	persistedFailLabelConstant              = "FAIL"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common  ApplicationCommonConfiguration  `mapstructure:"common"`
	Checker ApplicationCheckerConfiguration `mapstructure:"checker"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationCheckerConfiguration tunes scan behavior.
type ApplicationCheckerConfiguration struct {
	Auth             string   `mapstructure:"auth"`
	TimeoutSeconds   int      `mapstructure:"timeout_seconds"`
	RequiredKeywords []string `mapstructure:"required_keywords"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	authFlagValue          string
	verboseFlagValue       bool
	jsonFlagValue          bool
	outputFlagValue        string
	testFlagValue          bool
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.Flags().StringVar(&application.authFlagValue, authFlagNameConstant, "", authFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.verboseFlagValue, verboseFlagNameConstant, false, verboseFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.jsonFlagValue, jsonFlagNameConstant, false, jsonFlagUsageConstant)
	cobraCommand.Flags().StringVar(&application.outputFlagValue, outputFlagNameConstant, "", outputFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.testFlagValue, testFlagNameConstant, false, testFlagUsageConstant)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
		checkerAuthConfigKeyConstant:     string(githubauth.MethodAutomatic),
		checkerTimeoutConfigKeyConstant:  int(source.DefaultRemoteTimeout / time.Second),
		checkerKeywordsConfigKeyConstant: rules.RequiredRepositoryKeywords,
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if command != nil && command.Flags().Changed(authFlagNameConstant) {
		application.configuration.Checker.Auth = application.authFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	outputWriter := command.OutOrStdout()
	symbols := report.ResolveSymbolSet(os.Stdout)

	if application.testFlagValue {
		if !selftest.Run(outputWriter, symbols) {
			return ExitError{Code: ExitCodeNonCompliant}
		}
		return nil
	}

	if len(arguments) == 0 {
		return errors.New(missingRepositoryArgumentMessage)
	}

	scanReport, scanError := application.runScan(command.Context(), arguments[0], command.ErrOrStderr())
	if scanError != nil {
		return scanError
	}

	if renderError := application.renderReport(outputWriter, scanReport, symbols); renderError != nil {
		return renderError
	}

	if scanReport.CalculateScore() >= report.ScoreGoodThresholdConstant {
		return nil
	}
	return ExitError{Code: ExitCodeNonCompliant}
}

func (application *Application) runScan(executionContext context.Context, targetIdentifier string, errorWriter io.Writer) (*report.Report, error) {
	configurationFilePath, _ := application.commandContextAccessor.ConfigurationFilePath(executionContext)
	application.logger.Debug(
		scanStartingMessageConstant,
		zap.String(scanTargetFieldConstant, targetIdentifier),
		zap.String(configurationFileFieldConstant, configurationFilePath),
	)

	service := checker.NewService(application.logger)
	options := checker.Options{RequiredKeywords: application.configuration.Checker.RequiredKeywords}

	if source.Detect(targetIdentifier) == report.SourceKindLocal {
		return application.runLocalScan(executionContext, service, targetIdentifier, options, errorWriter)
	}
	return application.runRemoteScan(executionContext, service, targetIdentifier, options, errorWriter)
}

// echoManifestParseError surfaces a manifest parse failure on the error
// stream in verbose mode. Scans treat a malformed manifest the same as a
// missing one, so this is the only place the underlying error is shown.
func (application *Application) echoManifestParseError(executionContext context.Context, repositorySource source.RepositorySource, errorWriter io.Writer) {
	if !application.verboseFlagValue {
		return
	}

	manifestContent, manifestFound := repositorySource.ReadFile(executionContext, manifestFileNameConstant)
	if !manifestFound {
		return
	}
	if _, parseError := manifest.Parse([]byte(manifestContent)); parseError != nil {
		fmt.Fprintf(errorWriter, manifestParseErrorTemplateConstant, parseError)
	}
}

func (application *Application) runLocalScan(executionContext context.Context, service *checker.Service, targetPath string, options checker.Options, errorWriter io.Writer) (*report.Report, error) {
	localSource, creationError := source.NewLocalSource(targetPath, application.logger)
	if creationError != nil {
		if !errors.Is(creationError, source.ErrPathNotDirectory) {
			return nil, creationError
		}

		resolvedPath, resolveError := filepath.Abs(targetPath)
		if resolveError != nil {
			resolvedPath = targetPath
		}
		return checker.InvalidLocalPathReport(checker.Target{
			Identifier:  resolvedPath,
			DisplayName: filepath.Base(resolvedPath),
			Kind:        report.SourceKindLocal,
		}), nil
	}

	application.echoManifestParseError(executionContext, localSource, errorWriter)

	target := checker.Target{
		Identifier:  localSource.RootDirectory(),
		DisplayName: filepath.Base(localSource.RootDirectory()),
		Kind:        report.SourceKindLocal,
	}
	return service.Evaluate(executionContext, localSource, target, options), nil
}

func (application *Application) runRemoteScan(executionContext context.Context, service *checker.Service, targetSpecification string, options checker.Options, errorWriter io.Writer) (*report.Report, error) {
	repository, parseError := source.ParseRemoteSpecification(targetSpecification)
	if parseError != nil {
		return nil, parseError
	}

	authenticationMethod, methodError := githubauth.ParseMethod(application.configuration.Checker.Auth)
	if methodError != nil {
		return nil, methodError
	}

	credential, credentialError := githubauth.ResolveCredential(authenticationMethod, os.LookupEnv, exec.LookPath)
	if credentialError != nil {
		return nil, fmt.Errorf(authenticationErrorTemplateConstant, credentialError)
	}

	shellExecutor, executorError := execshell.NewShellExecutor(application.logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, executorError
	}

	remoteSource := source.NewRemoteSource(
		repository,
		shellExecutor,
		credential,
		time.Duration(application.configuration.Checker.TimeoutSeconds)*time.Second,
		application.logger,
	)

	application.echoManifestParseError(executionContext, remoteSource, errorWriter)

	target := checker.Target{
		Identifier:  fmt.Sprintf(remoteURLTemplateConstant, repository),
		DisplayName: repository,
		Kind:        report.SourceKindGitHub,
	}
	return service.Evaluate(executionContext, remoteSource, target, options), nil
}

func (application *Application) renderReport(outputWriter io.Writer, scanReport *report.Report, symbols report.SymbolSet) error {
	if application.jsonFlagValue {
		payload, encodeError := json.MarshalIndent(scanReport.JSONDocument(symbols), "", "  ")
		if encodeError != nil {
			return encodeError
		}
		fmt.Fprintln(outputWriter, string(payload))

		if len(application.outputFlagValue) > 0 {
			return os.WriteFile(application.outputFlagValue, payload, reportFilePermissionsConstant)
		}
		return nil
	}

	if renderError := scanReport.WriteText(outputWriter, report.TextRenderOptions{
		Verbose: application.verboseFlagValue,
		Symbols: symbols,
	}); renderError != nil {
		return renderError
	}

	if len(application.outputFlagValue) > 0 {
		return os.WriteFile(application.outputFlagValue, []byte(persistedTextReport(scanReport)), reportFilePermissionsConstant)
	}
	return nil
}

// persistedTextReport builds the plain-text file representation, always using
// ASCII status labels regardless of terminal capabilities.
func persistedTextReport(scanReport *report.Report) string {
	var reportBuilder strings.Builder
	fmt.Fprintf(&reportBuilder, persistedReportHeaderTemplateConstant,
		scanReport.RepositoryIdentifier,
		scanReport.CalculateScore(),
		scanReport.Summary(report.AsciiSymbolSet()),
	)
	for _, checkResult := range scanReport.Checks {
		statusLabel := persistedFailLabelConstant
		if checkResult.Passed {
			statusLabel = persistedPassLabelConstant
		}
		fmt.Fprintf(&reportBuilder, persistedCheckLineTemplateConstant, statusLabel, checkResult.Name, checkResult.Message)
	}
	return reportBuilder.String()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
