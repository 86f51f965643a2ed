package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephlewis42/ampsh/core/process"
	"github.com/josephlewis42/ampsh/core/shell"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	LogsDirName       = "session_logs"
	AppLogName        = "app.log"
)

// Color modes.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	ProgramName string `json:"program_name" validate:"required"`
	Prompt      string `json:"prompt"`
	Farewell    string `json:"farewell"`

	MaxLineLength int `json:"max_line_length" validate:"gte=2,lte=4096"`
	MaxSegments   int `json:"max_segments" validate:"gte=1,lte=1024"`
	MaxArguments  int `json:"max_arguments" validate:"gte=1,lte=4096"`

	ForegroundMode string `json:"foreground_mode" validate:"oneof=spawn replace"`
	Color          string `json:"color" validate:"oneof=always auto never"`

	HistoryFile    string `json:"history_file"`
	RecordSessions bool   `json:"record_sessions"`
	EventLog       bool   `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Limits returns the parser limits.
func (c *Configuration) Limits() shell.Limits {
	return shell.Limits{
		MaxLineLength: c.MaxLineLength,
		MaxSegments:   c.MaxSegments,
		MaxArguments:  c.MaxArguments,
	}
}

// Mode returns how foreground commands are executed.
func (c *Configuration) Mode() process.Mode {
	return process.Mode(c.ForegroundMode)
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// Dir returns the absolute configuration directory, or "" if the
// configuration isn't backed by the OS filesystem.
func (c *Configuration) Dir() string {
	if bp, ok := c.configFs.(*afero.BasePathFs); ok {
		if dir, err := bp.RealPath("/"); err == nil {
			return dir
		}
	}
	return ""
}

// HistoryPath resolves the history file on disk, "" disables history.
func (c *Configuration) HistoryPath() string {
	switch {
	case c.HistoryFile == "":
		return ""
	case filepath.IsAbs(c.HistoryFile):
		return c.HistoryFile
	}

	dir := c.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, c.HistoryFile)
}

// CreateSessionLog creates a new session recording with the given name.
func (c *Configuration) CreateSessionLog(name string) (afero.File, error) {
	if err := c.fs().MkdirAll(LogsDirName, 0700); err != nil {
		return nil, err
	}
	toCreate := filepath.Join(LogsDirName, name)
	return c.fs().Create(toCreate)
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built-in configuration, not backed by any directory.
func Default() *Configuration {
	cfg := defaultConfig()
	cfg.configFs = afero.NewMemMapFs()
	return cfg
}
