package main

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"lyrix/internal/config"
	"lyrix/internal/library"
	"lyrix/internal/library/sqlitekv"
	"lyrix/internal/logging"
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

// withLibrary opens the library store for the duration of fn. The store holds
// an exclusive session lock, so every command opens and closes it around its
// own work.
func (c *commandContext) withLibrary(fn func(*library.Library) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	store, err := sqlitekv.Open(cfg.Paths.DataDir)
	if err != nil {
		if errors.Is(err, sqlitekv.ErrLocked) {
			return errors.New("library is in use by another lyrix session")
		}
		return err
	}
	defer store.Close()

	lib, err := library.Open(store, logger)
	if err != nil {
		return err
	}
	return fn(lib)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// resolveKey maps a user-supplied song reference to its store key. Both bare
// timeline ids and full keys are accepted.
func resolveKey(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, library.KeyPrefix) {
		return ref
	}
	return library.KeyPrefix + ref
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
