package fastidious

import (
	"time"

	"github.com/arthur-debert/fastidious/pkg/filesystem"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/arthur-debert/fastidious/pkg/vars"
	"github.com/spf13/cobra"
)

// actionFlags are shared by every command that performs an action
type actionFlags struct {
	active      bool
	passive     bool
	interactive bool
	timeout     time.Duration
	vars        []string
	varsFile    string
}

func (f *actionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.active, "active", "a", false, MsgFlagActive)
	cmd.Flags().BoolVarP(&f.passive, "passive", "p", false, MsgFlagPassive)
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, MsgFlagInteractive)
	cmd.MarkFlagsMutuallyExclusive("active", "passive", "interactive")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, MsgFlagTimeout)
	f.registerVars(cmd)
}

func (f *actionFlags) registerVars(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.vars, "var", nil, MsgFlagVar)
	cmd.Flags().StringVar(&f.varsFile, "vars-file", "", MsgFlagVarsFile)
}

func (f *actionFlags) mode() types.ExecutionMode {
	return types.ModeFromFlags(f.active, f.passive, f.interactive)
}

// loadVars layers the vars file and then --var items over base
func (f *actionFlags) loadVars(base types.Vars) (types.Vars, error) {
	result := base.Clone()
	if f.varsFile != "" {
		fromFile, err := vars.LoadFile(filesystem.NewOS(), f.varsFile)
		if err != nil {
			return nil, err
		}
		result = result.Merge(fromFile)
	}
	fromArgs, err := vars.FromArgs(f.vars)
	if err != nil {
		return nil, err
	}
	return result.Merge(fromArgs), nil
}

func withConfig(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationConfig] = "true"
	return cmd
}
