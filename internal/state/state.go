package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Paintersrp/quire/internal/binder"
	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/internal/constants"
	"github.com/Paintersrp/quire/internal/logger"
)

type State struct {
	Config      *config.Config
	Project     *config.Project
	ProjectName string
	Binder      *binder.Binder
	Home        string
	Logger      *logrus.Logger
	Watcher     *ProjectWatcher
	LoadedAt    time.Time
}

// Options tune NewState. Zero values fall back to the config file and the
// QUIRE_LOG environment variable.
type Options struct {
	Project  string
	LogLevel string
}

// NewState loads the config and the active project's binder.
func NewState(opts Options) (*State, error) {
	s, err := NewConfigState(opts)
	if err != nil {
		return nil, err
	}
	if err := s.LoadBinder(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewConfigState loads the config without touching the project directory, for
// commands that must work before a project is registered. A config whose
// active project has no directory yet is not an error here.
func NewConfigState(opts Options) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{Level: opts.LogLevel, Home: home})
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	cfg, err := LoadConfig(home)
	var initErr *config.ConfigInitError
	if errors.As(err, &initErr) {
		cfg, err = config.Load(home)
	}
	if err != nil {
		return nil, err
	}

	override := opts.Project
	if override == "" {
		override = strings.TrimSpace(os.Getenv(constants.EnvProject))
	}
	if override != "" {
		if err := cfg.ActivateProject(override); err != nil {
			return nil, err
		}
	}

	p, err := cfg.ActiveProject()
	if err != nil {
		return nil, err
	}

	return &State{
		Config:      cfg,
		Project:     p,
		ProjectName: cfg.CurrentProject,
		Home:        home,
		Logger:      log,
	}, nil
}

// LoadBinder reads the active project from disk.
func (s *State) LoadBinder() error {
	if strings.TrimSpace(s.Project.Dir) == "" {
		return config.NewInitError(
			"project %q has no directory. Run `%s init <dir>` to register one",
			s.ProjectName,
			constants.AppName,
		)
	}

	b, err := binder.Load(s.Project.Dir, binder.WithLogger(s.Logger), binder.WithPalette(s.Project.Labels))
	if err != nil {
		return fmt.Errorf("failed to load project %q: %w", s.ProjectName, err)
	}

	s.Logger.WithFields(logrus.Fields{
		"project":   s.ProjectName,
		"dir":       b.Dir(),
		"documents": len(b.Documents()),
	}).Info("project loaded")

	s.Binder = b
	s.LoadedAt = time.Now()
	return nil
}

// Watch starts a watcher on the project directory. It is only needed by the
// interactive outliner, so commands that run once never pay for it.
func (s *State) Watch() (*ProjectWatcher, error) {
	if s.Watcher != nil {
		return s.Watcher, nil
	}

	w, err := NewProjectWatcher(s.Binder.Dir())
	if err != nil {
		return nil, fmt.Errorf("failed to create project watcher: %w", err)
	}
	w.OnChange(func(rel string) {
		s.Logger.WithField("path", rel).Debug("project changed")
	})
	s.Watcher = w
	return w, nil
}

// Reload re-reads the binder from disk.
func (s *State) Reload() error {
	if err := s.Binder.Reload(); err != nil {
		s.Logger.WithError(err).Error("reload failed")
		return err
	}
	s.LoadedAt = time.Now()
	return nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(filepath.Join(home, constants.ConfigDir))
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	_ = viper.ReadInConfig()

	err := config.EnsureConfigExists(home)
	if err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Close releases the project watcher.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
