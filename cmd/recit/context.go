package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/frudas24/recit/internal/config"
	"github.com/frudas24/recit/internal/logging"
	"github.com/frudas24/recit/internal/monitor"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensureConfig loads the configuration once and applies the --log-level override.
func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				if _, err := log.ParseLevel(level); err != nil {
					c.configErr = fmt.Errorf("--log-level: %w", err)
					return
				}
				cfg.LogLevel = level
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger returns a leveled logger writing to the command's stderr.
func (c *commandContext) logger(cmd *cobra.Command) *log.Logger {
	return logging.New(cmd.ErrOrStderr(), c.config.LogLevel)
}

// detector builds a monitor detector from the loaded configuration.
func (c *commandContext) detector(cmd *cobra.Command) *monitor.Detector {
	return monitor.NewDetector(c.config.DetectorOptions(), c.logger(cmd))
}

// selectMonitor returns the named monitor, or the primary one when name is blank.
func selectMonitor(list []monitor.Monitor, name string) (monitor.Monitor, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		m, ok := monitor.ByName(list, name)
		if !ok {
			return monitor.Monitor{}, fmt.Errorf("monitor %q not found (have %s)", name, monitorNames(list))
		}
		return m, nil
	}
	if m, ok := monitor.PrimaryOf(list); ok {
		return m, nil
	}
	return monitor.Default(), nil
}

func monitorNames(list []monitor.Monitor) string {
	names := make([]string, 0, len(list))
	for _, m := range list {
		names = append(names, m.Name)
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
