package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/duis-detector/config"
	"github.com/GoSim-25-26J-441/duis-detector/internal/logging"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

// exitError carries a non-zero batch exit code out of a command.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

type globalFlags struct {
	rulesFile string
	enable    []string
	logLevel  string
}

type app struct {
	flags globalFlags
	cfg   *config.Config
	log   *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "duis",
		Short:         "Detect declarative UI smells in component graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := cfg.App.LogLevel
			if a.flags.logLevel != "" {
				level = a.flags.logLevel
			}
			a.cfg = cfg
			a.log = logging.New(cmd.ErrOrStderr(), level, cfg.App.Environment)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.flags.rulesFile, "rules-file", "", "TOML file with rule thresholds (default DETECT_RULES_FILE)")
	root.PersistentFlags().StringSliceVar(&a.flags.enable, "enable", nil, "Comma separated rule ids to run (default all)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "Log level (default LOG_LEVEL)")

	root.AddCommand(newAnalyzeCmd(a), newRulesCmd(a), newScheduleCmd(a))
	return root
}

// rules layers the config file, environment and --enable.
func (a *app) rules() (detection.Config, error) {
	path := a.flags.rulesFile
	if path == "" {
		path = a.cfg.Detection.RulesFile
	}
	cfg, err := detection.LoadConfig(path)
	if err != nil {
		return detection.Config{}, err
	}
	if len(a.flags.enable) > 0 {
		ids := make([]domain.RuleID, 0, len(a.flags.enable))
		for _, id := range a.flags.enable {
			ids = append(ids, domain.RuleID(id))
		}
		cfg = cfg.Merge(detection.Config{EnabledRules: ids})
	}
	return cfg, cfg.Validate()
}
