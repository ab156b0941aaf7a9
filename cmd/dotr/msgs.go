package dotr

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A dotfiles deployment tool with templates and profiles"
	MsgInitShort       = "Create a dotr configuration in the working directory"
	MsgImportShort     = "Import a file or directory into the dotfiles store"
	MsgDeployShort     = "Deploy packages to their destinations"
	MsgUpdateShort     = "Copy deployed files back into the store"
	MsgDiffShort       = "Show differences between the store and deployed files"
	MsgPrintVarsShort  = "Print the merged template variables"
	MsgGuideShort      = "Show built-in documentation"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgInitializing     = "Initializing configuration..."
	MsgInitDone         = "Configuration initialized successfully."
	MsgInitSkipped      = "config.toml already exists. Initialization skipped."
	MsgImporting        = "Importing dotfiles from path: %s\n"
	MsgImported         = "Package '%s' imported successfully.\n"
	MsgGuideTopics      = "Available guide topics:"
	MsgGuideTopicItem   = "  %s\n"
	MsgGuideTopicUsage  = "\nRun 'dotr guide <topic>' to read one.\n"

	// Error messages
	MsgErrInit      = "failed to initialize configuration: %w"
	MsgErrImport    = "failed to import: %w"
	MsgErrDeploy    = "failed to deploy: %w"
	MsgErrUpdate    = "failed to update: %w"
	MsgErrDiff      = "failed to diff: %w"
	MsgErrPrintVars = "failed to print variables: %w"
	MsgErrGuide     = "failed to show guide: %w"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagWorkingDir = "Directory containing config.toml (defaults to the current directory)"
	MsgFlagProfile    = "Profile to activate"
	MsgFlagName       = "Package name to use instead of the derived one"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/import-long.txt
	msgImportLongRaw string
	MsgImportLong    = strings.TrimSpace(msgImportLongRaw)

	//go:embed msgs/import-example.txt
	msgImportExampleRaw string
	MsgImportExample    = strings.TrimSpace(msgImportExampleRaw)

	//go:embed msgs/deploy-long.txt
	msgDeployLongRaw string
	MsgDeployLong    = strings.TrimSpace(msgDeployLongRaw)

	//go:embed msgs/deploy-example.txt
	msgDeployExampleRaw string
	MsgDeployExample    = strings.TrimSpace(msgDeployExampleRaw)

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/update-example.txt
	msgUpdateExampleRaw string
	MsgUpdateExample    = strings.TrimSpace(msgUpdateExampleRaw)

	//go:embed msgs/diff-long.txt
	msgDiffLongRaw string
	MsgDiffLong    = strings.TrimSpace(msgDiffLongRaw)

	//go:embed msgs/diff-example.txt
	msgDiffExampleRaw string
	MsgDiffExample    = strings.TrimSpace(msgDiffExampleRaw)

	//go:embed msgs/print-vars-long.txt
	msgPrintVarsLongRaw string
	MsgPrintVarsLong    = strings.TrimSpace(msgPrintVarsLongRaw)

	//go:embed msgs/guide-long.txt
	msgGuideLongRaw string
	MsgGuideLong    = strings.TrimSpace(msgGuideLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
