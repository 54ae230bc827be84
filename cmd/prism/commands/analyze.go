package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/prism/internal/app"
)

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [labels...]",
		Short: "Load and analyze targets",
		Long: "Load the packages of the given labels and target patterns, " +
			"then analyze their transitive closure in every target configuration.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			dir, _ := cmd.Flags().GetString("directory")
			keepGoing, _ := cmd.Flags().GetBool("keep-going")
			incremental, _ := cmd.Flags().GetBool("incremental")
			dynamic, _ := cmd.Flags().GetBool("dynamic-configs")
			aspects, _ := cmd.Flags().GetStringArray("aspect")
			options, _ := cmd.Flags().GetStringArray("option")
			policy, _ := cmd.Flags().GetString("policy")
			output, _ := cmd.Flags().GetString("output")
			watch, _ := cmd.Flags().GetBool("watch")
			interval, _ := cmd.Flags().GetDuration("interval")
			metricsFile, _ := cmd.Flags().GetString("metrics-file")

			return c.app.Analyze(cmd.Context(), args, app.AnalyzeOptions{
				Dir:         dir,
				KeepGoing:   keepGoing,
				Incremental: incremental,
				Dynamic:     dynamic,
				Aspects:     aspects,
				Options:     options,
				Policy:      policy,
				Output:      output,
				Watch:       watch,
				Interval:    interval,
				MetricsFile: metricsFile,
			})
		},
	}

	cmd.Flags().BoolP("keep-going", "k", false, "Report failed labels and targets instead of stopping at the first")
	cmd.Flags().Bool("incremental", false, "Reload only packages whose files changed")
	cmd.Flags().Bool("dynamic-configs", false, "Create configurations per target")
	cmd.Flags().StringArray("aspect", nil, "Apply an aspect to the requested targets (repeatable)")
	cmd.Flags().StringArrayP("option", "o", nil, "Pass a build option such as --compilation_mode=opt (repeatable)")
	cmd.Flags().String("policy", "", "Invocation policy file (default: policy.yaml at the workspace root)")
	cmd.Flags().String("output", "auto", "Output format: auto, pretty, plain or json")
	cmd.Flags().BoolP("watch", "w", false, "Re-analyze when workspace files change")
	cmd.Flags().Duration("interval", app.DefaultWatchInterval, "Pause between updates in watch mode")
	cmd.Flags().String("metrics-file", "", "Write pipeline metrics in the Prometheus text format to this file")
	return cmd
}
