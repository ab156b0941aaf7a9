package dotr

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotr/pkg/commands/deploy"
	"github.com/arthur-debert/dotr/pkg/commands/diff"
	"github.com/arthur-debert/dotr/pkg/commands/importer"
	"github.com/arthur-debert/dotr/pkg/commands/initialize"
	"github.com/arthur-debert/dotr/pkg/commands/printvars"
	"github.com/arthur-debert/dotr/pkg/commands/update"
	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/guide"
	"github.com/arthur-debert/dotr/pkg/paths"
	"github.com/arthur-debert/dotr/pkg/prompt"
	"github.com/arthur-debert/dotr/pkg/style"
	"github.com/arthur-debert/dotr/pkg/ui"
	"github.com/spf13/cobra"
)

// workingDirFlag reads the persistent working-dir flag from the root command.
func workingDirFlag(cmd *cobra.Command) string {
	dir, _ := cmd.Root().PersistentFlags().GetString("working-dir")
	return dir
}

// maybeShowBanner prints the startup banner when the configuration enables
// it. Errors are ignored, a missing repository just means no banner.
func maybeShowBanner(cmd *cobra.Command) {
	dir, err := paths.WorkingDir(workingDirFlag(cmd))
	if err != nil {
		return
	}
	cfg, err := config.Load(dir)
	if err != nil || !cfg.Banner {
		return
	}
	fmt.Println(style.RenderBanner())
}

// interactiveAsker returns a terminal prompter when stdin is a terminal,
// nil otherwise. A nil asker makes deploy skip prompting entirely.
func interactiveAsker() prompt.Asker {
	if ui.Interactive() {
		return prompt.SurveyAsker{}
	}
	return nil
}

// outputRenderer picks the renderer matching the stdout terminal state.
func outputRenderer() style.Renderer {
	return ui.RendererFor(ui.Resolve(ui.FormatAuto, os.Stdout))
}

// packageNamesCompletion provides shell completion for package names
func packageNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	dir, err := paths.WorkingDir(workingDirFlag(cmd))
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	// Filter out already specified packages
	var available []string
	for _, name := range cfg.PackageNames() {
		taken := false
		for _, arg := range args {
			if arg == name {
				taken = true
				break
			}
		}
		if !taken {
			available = append(available, name)
		}
	}

	return available, cobra.ShellCompDirectiveNoFileComp
}

// guideTopicsCompletion provides shell completion for guide topic names
func guideTopicsCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return guide.Topics(), cobra.ShellCompDirectiveNoFileComp
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(MsgInitializing)

			result, err := initialize.Init(initialize.InitOptions{
				WorkingDir: workingDirFlag(cmd),
			})
			if err != nil {
				return fmt.Errorf(MsgErrInit, err)
			}

			if result.Created {
				fmt.Println(MsgInitDone)
			} else {
				fmt.Println(MsgInitSkipped)
			}

			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import <path>",
		Short:   MsgImportShort,
		Long:    MsgImportLong,
		Example: MsgImportExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			maybeShowBanner(cmd)

			name, _ := cmd.Flags().GetString("name")
			profile, _ := cmd.Flags().GetString("profile")

			fmt.Printf(MsgImporting, args[0])

			result, err := importer.Import(importer.ImportOptions{
				WorkingDir: workingDirFlag(cmd),
				Path:       args[0],
				Name:       name,
				Profile:    profile,
			})
			if err != nil {
				return fmt.Errorf(MsgErrImport, err)
			}

			fmt.Printf(MsgImported, result.PackageName)

			return nil
		},
	}

	cmd.Flags().StringP("name", "n", "", MsgFlagName)
	cmd.Flags().StringP("profile", "p", "", MsgFlagProfile)

	return cmd
}

func newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "deploy [packages...]",
		Short:             MsgDeployShort,
		Long:              MsgDeployLong,
		Example:           MsgDeployExample,
		GroupID:           "core",
		ValidArgsFunction: packageNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			maybeShowBanner(cmd)

			profile, _ := cmd.Flags().GetString("profile")

			_, err := deploy.Deploy(deploy.DeployOptions{
				WorkingDir: workingDirFlag(cmd),
				Packages:   args,
				Profile:    profile,
				Asker:      interactiveAsker(),
				Out:        os.Stdout,
			})
			if err != nil {
				return fmt.Errorf(MsgErrDeploy, err)
			}

			return nil
		},
	}

	cmd.Flags().StringP("profile", "p", "", MsgFlagProfile)

	return cmd
}

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "update [packages...]",
		Short:             MsgUpdateShort,
		Long:              MsgUpdateLong,
		Example:           MsgUpdateExample,
		GroupID:           "core",
		ValidArgsFunction: packageNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			maybeShowBanner(cmd)

			profile, _ := cmd.Flags().GetString("profile")

			_, err := update.Update(update.UpdateOptions{
				WorkingDir: workingDirFlag(cmd),
				Packages:   args,
				Profile:    profile,
				Out:        os.Stdout,
			})
			if err != nil {
				return fmt.Errorf(MsgErrUpdate, err)
			}

			return nil
		},
	}

	cmd.Flags().StringP("profile", "p", "", MsgFlagProfile)

	return cmd
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "diff [packages...]",
		Short:             MsgDiffShort,
		Long:              MsgDiffLong,
		Example:           MsgDiffExample,
		GroupID:           "core",
		ValidArgsFunction: packageNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			maybeShowBanner(cmd)

			profile, _ := cmd.Flags().GetString("profile")

			result, err := diff.Diff(diff.DiffOptions{
				WorkingDir: workingDirFlag(cmd),
				Packages:   args,
				Profile:    profile,
			})
			if err != nil {
				return fmt.Errorf(MsgErrDiff, err)
			}

			renderer := outputRenderer()
			for i := range result.Reports {
				fmt.Println(renderer.RenderDiff(&result.Reports[i]))
			}

			return nil
		},
	}

	cmd.Flags().StringP("profile", "p", "", MsgFlagProfile)

	return cmd
}

func newPrintVarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "print-vars",
		Aliases: []string{"vars"},
		Short:   MsgPrintVarsShort,
		Long:    MsgPrintVarsLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			maybeShowBanner(cmd)

			profile, _ := cmd.Flags().GetString("profile")

			result, err := printvars.PrintVars(printvars.PrintVarsOptions{
				WorkingDir: workingDirFlag(cmd),
				Profile:    profile,
			})
			if err != nil {
				return fmt.Errorf(MsgErrPrintVars, err)
			}

			fmt.Println(outputRenderer().RenderVariables(result.Variables))

			return nil
		},
	}

	cmd.Flags().StringP("profile", "p", "", MsgFlagProfile)

	return cmd
}

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "guide [topic]",
		Short:             MsgGuideShort,
		Long:              MsgGuideLong,
		Args:              cobra.MaximumNArgs(1),
		GroupID:           "misc",
		ValidArgsFunction: guideTopicsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println(MsgGuideTopics)
				for _, topic := range guide.Topics() {
					fmt.Printf(MsgGuideTopicItem, topic)
				}
				fmt.Print(MsgGuideTopicUsage)
				return nil
			}

			colored := ui.Resolve(ui.FormatAuto, os.Stdout) == ui.FormatTerminal
			rendered, err := guide.Render(args[0], colored)
			if err != nil {
				return fmt.Errorf(MsgErrGuide, err)
			}

			fmt.Println(rendered)
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
