package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"showbrake/internal/config"
	"showbrake/internal/deps"
	"showbrake/internal/disc"
	"showbrake/internal/iflicks"
	"showbrake/internal/ripping"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check dependencies, directories and mounted discs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range statusLines(cfg, colorize) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func statusLines(cfg *config.Config, colorize bool) []string {
	var lines []string

	lines = append(lines, renderSectionHeader("Dependencies", colorize))
	lines = append(lines, dependencyLines(deps.CheckBinaries(deps.Requirements(cfg)), colorize)...)

	lines = append(lines, "", renderSectionHeader("Directories", colorize))
	for _, check := range []deps.DirectoryStatus{
		deps.CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		deps.CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
	} {
		kind := statusOK
		if !check.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(check.Name, kind, fmt.Sprintf("%s (%s)", check.Detail, check.Path), colorize))
	}

	lines = append(lines, "", renderSectionHeader("Media", colorize))
	lines = append(lines, volumeLines(cfg, colorize)...)
	importer := iflicks.New(cfg.IFlicks.AppPath, cfg.IFlicks.OSAScript)
	if importer.Installed() {
		lines = append(lines, renderStatusLine("iFlicks", statusOK, "Installed", colorize))
	} else {
		lines = append(lines, renderStatusLine("iFlicks", statusInfo, "Not installed", colorize))
	}
	return lines
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	for _, dep := range statuses {
		if dep.Available {
			lines = append(lines, renderStatusLine(dep.Name, statusOK, fmt.Sprintf("Ready (%s)", dep.Path), colorize))
			continue
		}
		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
	}
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing dependencies", statusError, strings.Join(missing, ", "), colorize))
	}
	return lines
}

func volumeLines(cfg *config.Config, colorize bool) []string {
	volumes, err := ripping.DiscoverVolumes(cfg)
	if err != nil {
		if errors.Is(err, disc.ErrNoVolumes) {
			return []string{renderStatusLine("Discs", statusInfo, "None mounted", colorize)}
		}
		return []string{renderStatusLine("Discs", statusWarn, err.Error(), colorize)}
	}
	lines := make([]string, 0, len(volumes))
	for _, volume := range volumes {
		lines = append(lines, renderStatusLine(volume.Name, statusOK, fmt.Sprintf("%s at %s", volume.MediaType, volume.Path), colorize))
	}
	return lines
}

