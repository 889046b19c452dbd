package fastidious

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Run commands and render templates only when something would change"
	MsgRunShort        = "Run a command according to the execution mode"
	MsgTemplateShort   = "Render a template and install it when it differs"
	MsgApplyShort      = "Run an apply script unless its check says it is applied"
	MsgIsAppliedShort  = "Exit 0 when a check script says the action is applied"
	MsgSaveShort       = "Store a key/value pair in a YAML file"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgVersionFormat = "fastidious version %s\n  commit: %s\n  built:  %s\n"
	MsgManWritten    = "Man pages written to %s\n"

	// Error messages
	MsgErrNoCommand     = "no command specified"
	MsgErrNoScript      = "either --name or --then is required"
	MsgErrNoCheck       = "either --name or --if-not is required"
	MsgErrTemplateInput = "give either -I or inline text, not both"
	MsgErrNoTemplate    = "no template given: use -I or inline text"
	MsgErrNotApplied    = "not applied"
	MsgErrFilter        = "invalid --filter"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default is $XDG_CONFIG_HOME/fastidious/config.toml)"
	MsgFlagFormat      = "Output format: auto, term or text"
	MsgFlagActive      = "Perform the action"
	MsgFlagPassive     = "Only report what would be done (default)"
	MsgFlagInteractive = "Ask before each change"
	MsgFlagTimeout     = "Stop spawned commands after this long (0 waits forever)"
	MsgFlagVar         = "Set a variable, key=value (repeatable)"
	MsgFlagVarsFile    = "Read variables from a properties, XML or YAML file"
	MsgFlagInput       = "Template file"
	MsgFlagOutput      = "Destination file; without it the result is printed"
	MsgFlagFilter      = "Render by piping the template through this command"
	MsgFlagName        = "Scriptlet name, resolved through the configuration"
	MsgFlagIfNot       = "Check script; the action is applied when it exits 0"
	MsgFlagThen        = "Apply script"
	MsgFlagKey         = "Key to store"
	MsgFlagValue       = "Value to store"
	MsgFlagFile        = "YAML file to update"
	MsgFlagManDir      = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimSpace(msgRunExampleRaw)

	//go:embed msgs/template-long.txt
	msgTemplateLongRaw string
	MsgTemplateLong    = strings.TrimSpace(msgTemplateLongRaw)

	//go:embed msgs/template-example.txt
	msgTemplateExampleRaw string
	MsgTemplateExample    = strings.TrimSpace(msgTemplateExampleRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimSpace(msgApplyExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
