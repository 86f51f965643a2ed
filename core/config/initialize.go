package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes a default configuration into dir if one doesn't already
// exist and loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0700); err != nil {
		return nil, err
	}

	return InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), abs), logger)
}

// InitializeFs is Initialize on an arbitrary filesystem.
func InitializeFs(configFs afero.Fs, logger *log.Logger) (*Configuration, error) {
	switch _, err := configFs.Stat(ConfigurationName); {
	case err == nil:
		logger.Printf("%s already exists, skipping", ConfigurationName)
	case errors.Is(err, fs.ErrNotExist):
		logger.Printf("writing %s", ConfigurationName)
		if err := afero.WriteFile(configFs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	logger.Printf("creating %s/", LogsDirName)
	if err := configFs.MkdirAll(LogsDirName, 0700); err != nil {
		return nil, err
	}

	return LoadFs(configFs)
}
