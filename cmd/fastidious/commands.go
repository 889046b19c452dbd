package fastidious

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/fastidious/pkg/apply"
	"github.com/arthur-debert/fastidious/pkg/config"
	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/executor"
	"github.com/arthur-debert/fastidious/pkg/filesystem"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/arthur-debert/fastidious/pkg/template"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/arthur-debert/fastidious/pkg/vars"
	"github.com/arthur-debert/fastidious/pkg/vfile"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var flags actionFlags

	cmd := &cobra.Command{
		Use:     "run [flags] [--] command [args...]",
		Aliases: []string{"dryrun"},
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "actions",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.run")
			logger.Info().
				Str("mode", flags.mode().String()).
				Strs("argv", args).
				Msg("Starting run")

			vs, err := flags.loadVars(nil)
			if err != nil {
				return err
			}
			exec, reporter, err := a.newExecutor(cmd, &flags)
			if err != nil {
				return err
			}

			result, err := exec.Run(cmd.Context(), flags.mode(), args, vs)
			if err != nil {
				return err
			}
			reporter.ReportResult(result)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().SetInterspersed(false)
	return withConfig(cmd)
}

func newTemplateCmd(a *app) *cobra.Command {
	var (
		flags  actionFlags
		input  string
		output string
		filter string
	)

	cmd := &cobra.Command{
		Use:     "template [flags] [-I file | [--] text...]",
		Short:   MsgTemplateShort,
		Long:    MsgTemplateLong,
		Example: MsgTemplateExample,
		GroupID: "actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.template")

			src, err := templateSource(input, args)
			if err != nil {
				return err
			}
			vs, err := flags.loadVars(nil)
			if err != nil {
				return err
			}
			var filterArgv []string
			if filter != "" {
				filterArgv, err = shellquote.Split(filter)
				if err != nil {
					return errors.Wrap(err, errors.ErrInvalidInput, MsgErrFilter).
						WithDetail("filter", filter)
				}
			}

			logger.Info().
				Str("mode", flags.mode().String()).
				Str("source", src.String()).
				Str("dest", output).
				Strs("filter", filterArgv).
				Msg("Starting template")

			ctx := cmd.Context()
			opts := template.Options{TempDir: a.cfg.TempDir}

			if output == "" {
				return preview(cmd, vs, src, filterArgv, opts)
			}

			exec, reporter, err := a.newExecutor(cmd, &flags)
			if err != nil {
				return err
			}

			var outcome executor.Outcome
			if filterArgv != nil {
				gen, err := template.RenderFiltered(ctx, vs, src, filterArgv, opts)
				if err != nil {
					return err
				}
				defer gen.Release()
				outcome, err = exec.Materialize(ctx, flags.mode(), gen, src, output)
				if err != nil {
					return err
				}
			} else {
				outcome, err = exec.RenderAndMaterialize(ctx, flags.mode(), src, output, vs)
				if err != nil {
					return err
				}
			}

			logger.Debug().Str("diff", outcome.Diff.String()).Msg("template finished")
			reporter.ReportResult(outcome.Result)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "I", "", MsgFlagInput)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringVar(&filter, "filter", "", MsgFlagFilter)
	return withConfig(cmd)
}

// templateSource picks the template from -I or the inline words
func templateSource(input string, args []string) (*vfile.VirtualFile, error) {
	switch {
	case input != "" && len(args) > 0:
		return nil, errors.New(errors.ErrInvalidInput, MsgErrTemplateInput)
	case input != "":
		return vfile.FromPath(input), nil
	case len(args) > 0:
		return vfile.InMemory(strings.Join(args, " ")), nil
	default:
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoTemplate)
	}
}

// preview prints the candidate instead of comparing it with a destination
func preview(cmd *cobra.Command, vs types.Vars, src *vfile.VirtualFile, filterArgv []string, opts template.Options) error {
	out := cmd.OutOrStdout()
	if filterArgv == nil {
		data, err := src.ReadAll()
		if err != nil {
			return err
		}
		return template.RenderTo(vs, bytes.NewReader(data), out)
	}

	gen, err := template.RenderFiltered(cmd.Context(), vs, src, filterArgv, opts)
	if err != nil {
		return err
	}
	defer gen.Release()

	data, err := gen.Bytes()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func newApplyCmd(a *app) *cobra.Command {
	var (
		flags actionFlags
		name  string
		ifNot string
		then  string
	)

	cmd := &cobra.Command{
		Use:     "apply [flags]",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "actions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.apply")

			req, err := a.scriptlet(name, ifNot, then)
			if err != nil {
				return err
			}
			if req.Script == nil {
				return errors.New(errors.ErrInvalidInput, MsgErrNoScript)
			}
			req.Vars, err = flags.loadVars(req.Vars)
			if err != nil {
				return err
			}
			req.Mode = flags.mode()

			logger.Info().
				Str("mode", req.Mode.String()).
				Str("name", name).
				Str("script", req.Script.String()).
				Bool("check", req.Check != nil).
				Msg("Starting apply")

			exec, reporter, err := a.newExecutor(cmd, &flags)
			if err != nil {
				return err
			}
			result, err := apply.New(exec).Apply(cmd.Context(), req)
			if err != nil {
				return err
			}
			reporter.ReportResult(result)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", MsgFlagName)
	cmd.Flags().StringVarP(&ifNot, "if-not", "I", "", MsgFlagIfNot)
	cmd.Flags().StringVarP(&then, "then", "t", "", MsgFlagThen)
	return withConfig(cmd)
}

func newIsAppliedCmd(a *app) *cobra.Command {
	var (
		flags actionFlags
		name  string
		ifNot string
	)

	cmd := &cobra.Command{
		Use:     "is-applied (--name name | -I script) [flags]",
		Short:   MsgIsAppliedShort,
		GroupID: "actions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.scriptlet(name, ifNot, "")
			if err != nil {
				return err
			}
			if req.Check == nil {
				return errors.New(errors.ErrInvalidInput, MsgErrNoCheck)
			}
			vs, err := flags.loadVars(req.Vars)
			if err != nil {
				return err
			}

			exec, _, err := a.newExecutor(cmd, &flags)
			if err != nil {
				return err
			}
			applied, err := apply.New(exec).IsApplied(cmd.Context(), req.Check, vs)
			if err != nil {
				return err
			}
			if !applied {
				return errors.New(errors.ErrNotApplied, MsgErrNotApplied).
					WithDetail("check", req.Check.String())
			}
			return nil
		},
	}
	flags.registerVars(cmd)
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, MsgFlagTimeout)
	cmd.Flags().StringVar(&name, "name", "", MsgFlagName)
	cmd.Flags().StringVarP(&ifNot, "if-not", "I", "", MsgFlagIfNot)
	return withConfig(cmd)
}

// scriptlet assembles check and apply scripts from a scriptlet name and
// explicit script arguments, the latter taking precedence. A named
// scriptlet without a check script is applied unconditionally.
func (a *app) scriptlet(name, check, script string) (apply.Request, error) {
	req := apply.Request{Vars: types.Vars{}}

	if name != "" {
		r := config.NewResolver(a.cfg)
		req.Vars = r.Vars(name)

		if script == "" {
			s, err := r.Resolve(name, config.KindApply)
			if err != nil {
				return req, err
			}
			req.Script = s
		}
		if check == "" {
			c, err := r.Resolve(name, config.KindIsApplied)
			if err != nil && !errors.IsErrorCode(err, errors.ErrScriptletNotFound) {
				return req, err
			}
			req.Check = c
		}
	}

	if check != "" {
		req.Check = scriptArg(check)
	}
	if script != "" {
		req.Script = scriptArg(script)
	}
	return req, nil
}

// scriptArg treats s as a path when it names an existing file and as an
// inline script otherwise
func scriptArg(s string) *vfile.VirtualFile {
	if info, err := os.Stat(s); err == nil && info.Mode().IsRegular() {
		return vfile.FromPath(s)
	}
	return vfile.InMemory(s)
}

func newSaveCmd() *cobra.Command {
	var key, value, file string

	cmd := &cobra.Command{
		Use:     "save --key key --value value --file file",
		Short:   MsgSaveShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.save")
			logger.Info().
				Str("key", key).
				Str("file", file).
				Msg("Saving value")
			return vars.Save(filesystem.NewOS(), file, key, value)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", MsgFlagKey)
	cmd.Flags().StringVar(&value, "value", "", MsgFlagValue)
	cmd.Flags().StringVar(&file, "file", "", MsgFlagFile)
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Dump(a.cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	return withConfig(cmd)
}
