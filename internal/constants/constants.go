package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "rbscan"

	// ConfigFileName is the default config file name
	ConfigFileName = "rbscan.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "RBSCAN"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Exit codes
const (
	ExitOK             = 0
	ExitCheckFailed    = 1
	ExitExecutionError = 2
)
