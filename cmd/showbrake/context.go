package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"showbrake/internal/config"
	"showbrake/internal/disc"
	"showbrake/internal/episode"
	"showbrake/internal/handbrake"
	"showbrake/internal/logging"
	"showbrake/internal/ripping"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// handBrakeClient locates HandBrakeCLI and returns a client that appends the
// configured extra args followed by extra.
func (c *commandContext) handBrakeClient(extra []string) (*handbrake.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	binary, err := handbrake.Locate(cfg.HandBrake.Binary, cfg.HandBrake.SearchDirs)
	if err != nil {
		return nil, err
	}
	args := append(append([]string(nil), cfg.HandBrake.ExtraArgs...), extra...)
	return handbrake.New(binary, handbrake.WithExtraArgs(args), handbrake.WithLogger(logger))
}

// scanVolume resolves volumeArg (or the single mounted disc) and scans it.
func (c *commandContext) scanVolume(ctx context.Context, volumeArg string) (*disc.Disc, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	volume, err := resolveVolume(cfg, volumeArg)
	if err != nil {
		return nil, err
	}
	client, err := c.handBrakeClient(nil)
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	scanner := disc.NewScanner(client, cfg.Episodes.MinimumLengthSeconds, logger)
	return scanner.Scan(ctx, volume.Path, nil)
}

func (c *commandContext) segmentOptions() episode.SegmentOptions {
	cfg, _ := c.ensureConfig()
	if cfg == nil {
		return episode.SegmentOptions{}
	}
	return episode.SegmentOptions{
		MinimumLength: cfg.Episodes.MinimumLengthSeconds,
		Deviation:     cfg.Episodes.DurationDeviation,
	}
}

// resolveVolume returns the disc at arg, or the only mounted disc when arg is
// empty. Non-interactive commands refuse to guess between several discs.
func resolveVolume(cfg *config.Config, arg string) (disc.Volume, error) {
	if strings.TrimSpace(arg) != "" {
		volume, ok := ripping.VolumeFromPath(arg)
		if ok {
			return volume, nil
		}
		if mounted, err := ripping.DiscoverVolumes(cfg); err == nil {
			if closest, found := ripping.ClosestVolume(arg, mounted); found {
				return disc.Volume{}, fmt.Errorf("%s is not a DVD or Blu-ray volume; did you mean %s?", arg, closest.Path)
			}
		}
		return disc.Volume{}, fmt.Errorf("%s is not a DVD or Blu-ray volume", arg)
	}
	volumes, err := ripping.DiscoverVolumes(cfg)
	if err != nil {
		return disc.Volume{}, err
	}
	if len(volumes) > 1 {
		names := make([]string, len(volumes))
		for i, volume := range volumes {
			names[i] = volume.Path
		}
		return disc.Volume{}, fmt.Errorf("several discs are mounted; pass one of: %s", strings.Join(names, ", "))
	}
	return volumes[0], nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

