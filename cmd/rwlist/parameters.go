package main

import (
	flag "github.com/spf13/pflag"

	"github.com/iotaledger/rwlist/app/configuration"
	"github.com/iotaledger/rwlist/ierrors"
	"github.com/iotaledger/rwlist/stress"
)

const (
	modeScenario = "scenario"
	modeStress   = "stress"

	envPrefix = "RWLIST"
)

// Parameters contains the settings of the driver.
type Parameters struct {
	Mode       string
	ConfigFile string
	Stress     stress.Config
	Logger     LoggerParameters
}

// LoggerParameters contains the settings of the root logger.
type LoggerParameters struct {
	Level             string   `default:"info" usage:"the minimum enabled logging level"`
	DisableCaller     bool     `default:"true" usage:"stops annotating logs with the calling function's file name and line number"`
	DisableStacktrace bool     `usage:"disables automatic stacktrace capturing"`
	StacktraceLevel   string   `default:"panic" usage:"the level from which on stacktraces are captured"`
	Encoding          string   `default:"console" usage:"the logger's encoding (json or console)"`
	OutputPaths       []string `default:"stderr" usage:"a list of URLs, file paths or stdout/stderr to write logging output to"`
}

// loadParameters parses the command line, merges it with the config file and the environment and returns the
// resulting parameters together with the configuration they were loaded from.
func loadParameters(args []string) (*configuration.Configuration, *Parameters, error) {
	params := &Parameters{}
	config := configuration.New()

	flagSet := configuration.NewUnsortedFlagSet("rwlist", flag.ContinueOnError)
	flagSet.StringVarP(&params.Mode, "mode", "m", modeScenario, "the mode of the driver (scenario or stress)")
	flagSet.StringVarP(&params.ConfigFile, "config", "c", "", "the path to a JSON, YAML or TOML config file")
	config.BindParameters(flagSet, "stress", &params.Stress)
	config.BindParameters(flagSet, "logger", &params.Logger)

	if err := flagSet.Parse(args); err != nil {
		return nil, nil, ierrors.Wrap(err, "failed to parse command line")
	}

	if params.ConfigFile != "" {
		if err := config.LoadFile(params.ConfigFile); err != nil {
			return nil, nil, err
		}
	}

	// defaults of the flags are only applied to keys that were not loaded from the config file
	if err := config.LoadFlagSet(flagSet); err != nil {
		return nil, nil, ierrors.Wrap(err, "failed to load flags")
	}

	if err := config.LoadEnvironmentVars(envPrefix); err != nil {
		return nil, nil, ierrors.Wrap(err, "failed to load environment variables")
	}

	// load the flags again, so values given on the command line win over environment variables
	if err := config.LoadFlagSet(flagSet); err != nil {
		return nil, nil, ierrors.Wrap(err, "failed to load flags")
	}

	config.UpdateBoundParameters()
	params.Mode = config.String("mode")

	return config, params, nil
}
