package config

const (
	defaultStateDir             = "~/.local/share/showbrake"
	defaultLogDir               = "~/.local/share/showbrake/logs"
	defaultOutputDir            = "."
	defaultVolumesRoot          = "/Volumes"
	defaultMountTable           = "/proc/self/mounts"
	defaultHandBrakeBinary      = "HandBrakeCLI"
	defaultMinimumLengthSeconds = 600
	defaultDurationDeviation    = 0.25
	defaultIFlicksAppPath       = "/Applications/iFlicks.app"
	defaultOSAScript            = "osascript"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

var defaultSearchDirs = []string{"/usr/bin", "/usr/local/bin", "/Applications"}

// defaultEncoding holds the built-in HandBrakeCLI settings.
var defaultEncoding = Encoding{
	Common: map[string]any{
		"encoder":          "x264",
		"quality":          20,
		"optimize":         true,
		"audio":            "1,1",
		"aencoder":         "faac,copy:ac3",
		"ab":               "160,160",
		"mixdown":          "dpl2,auto",
		"arate":            "auto,auto",
		"drc":              "0.0,0.0",
		"format":           "mp4",
		"loose-anamorphic": true,
		"markers":          true,
	},
	DVD: map[string]any{
		"maxWidth": 720,
		"encopts":  "cabac=0:ref=2:me=umh:bframes=0:weightp=0:8x8dct=0:trellis=0:subme=6",
	},
	BluRay: map[string]any{
		"maxWidth":   1280,
		"large-file": true,
		"rate":       29.97,
		"pfr":        true,
	},
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:    defaultStateDir,
			LogDir:      defaultLogDir,
			OutputDir:   defaultOutputDir,
			VolumesRoot: defaultVolumesRoot,
			MountTable:  defaultMountTable,
		},
		HandBrake: HandBrake{
			Binary:     defaultHandBrakeBinary,
			SearchDirs: append([]string(nil), defaultSearchDirs...),
		},
		Episodes: Episodes{
			MinimumLengthSeconds: defaultMinimumLengthSeconds,
			DurationDeviation:    defaultDurationDeviation,
		},
		IFlicks: IFlicks{
			AppPath:   defaultIFlicksAppPath,
			OSAScript: defaultOSAScript,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
