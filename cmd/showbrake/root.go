package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"showbrake/internal/disc"
	"showbrake/internal/iflicks"
	"showbrake/internal/prefs"
	"showbrake/internal/prompt"
	"showbrake/internal/ripping"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var outputDir string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "showbrake [volume] [-- handbrake-args...]",
		Short: "Rip a TV-series disc into one file per episode",
		Long: "Scans a mounted DVD or Blu-ray with HandBrakeCLI, suggests episode boundaries\n" +
			"and encodes each episode. Arguments after -- are passed to HandBrakeCLI.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			volumeArg, extra := splitDashArgs(args, cmd.ArgsLenAtDash())
			if len(volumeArg) > 1 {
				return fmt.Errorf("expected at most one volume, got %d", len(volumeArg))
			}
			var volume string
			if len(volumeArg) == 1 {
				volume = volumeArg[0]
			}
			if outputDir != "" {
				cfg, _ := ctx.ensureConfig()
				cfg.Paths.OutputDir = outputDir
				if err := cfg.EnsureDirectories(); err != nil {
					return err
				}
			}
			return runSession(cmd, ctx, volume, extra)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for episode files (overrides paths.output_dir)")

	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newPrefsCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))

	return rootCmd
}

// splitDashArgs separates positional args from those after "--".
func splitDashArgs(args []string, dash int) ([]string, []string) {
	if dash < 0 || dash > len(args) {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func runSession(cmd *cobra.Command, ctx *commandContext, volume string, extra []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	lock, err := ripping.AcquireLock(cfg.Paths.StateDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	client, err := ctx.handBrakeClient(extra)
	if err != nil {
		return err
	}

	store, err := prefs.Open(cmd.Context(), cfg.Paths.StateDir)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	session, err := ripping.NewSession(ripping.Dependencies{
		Config:   cfg,
		Prompter: prompt.New(cmd.InOrStdin(), out),
		Out:      out,
		Scanner:  disc.NewScanner(client, cfg.Episodes.MinimumLengthSeconds, logger),
		Ripper:   client,
		Importer: iflicks.New(cfg.IFlicks.AppPath, cfg.IFlicks.OSAScript, iflicks.WithLogger(logger)),
		Prefs:    store,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	result, err := session.Run(cmd.Context(), volume)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Finished %d episode(s) from %s\n", len(result.Episodes), result.Answers.Volume.Name)
	return nil
}
