package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ambroisie/seer-inspect/internal/decode"
	inerrors "github.com/ambroisie/seer-inspect/internal/errors"
)

// Environment variables read by ApplyEnv.
const (
	EnvSnapshot     = "SEER_SNAPSHOT"
	EnvVerbosity    = "SEER_VERBOSITY"
	EnvStrict       = "SEER_STRICT"
	EnvMoveFormat   = "SEER_MOVE_FORMAT"
	EnvOutputFormat = "SEER_OUTPUT_FORMAT"
	EnvStoreDir     = "SEER_STORE_DIR"
	EnvSquareSize   = "SEER_SQUARE_SIZE"
	EnvWorkers      = "SEER_WORKERS"
)

// DefaultEnvFile is the dotenv file LoadEnv reads when present.
const DefaultEnvFile = ".env"

// LoadEnv loads a dotenv file into the process environment, without
// overriding variables that are already set. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return inerrors.Wrapf(err, "loading %s", path)
	}
	return nil
}

// ApplyEnv overlays SEER_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvSnapshot); ok {
		cfg.SnapshotFile = v
	}
	if v, ok := os.LookupEnv(EnvStoreDir); ok {
		cfg.Store.Dir = v
	}
	if v, ok := os.LookupEnv(EnvVerbosity); ok {
		n, err := envInt(EnvVerbosity, v)
		if err != nil {
			return err
		}
		cfg.Verbosity = n
	}
	if v, ok := os.LookupEnv(EnvSquareSize); ok {
		n, err := envInt(EnvSquareSize, v)
		if err != nil {
			return err
		}
		cfg.Image.SquareSize = n
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok {
		n, err := envInt(EnvWorkers, v)
		if err != nil {
			return err
		}
		cfg.Workers = n
	}
	if v, ok := os.LookupEnv(EnvStrict); ok {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvStrict, v, inerrors.ErrInvalidConfig)
		}
		cfg.Decode.Strict = strict
	}
	if v, ok := os.LookupEnv(EnvMoveFormat); ok {
		format, err := decode.ParseMoveFormat(v)
		if err != nil {
			return inerrors.Wrap(err, EnvMoveFormat)
		}
		cfg.Decode.MoveFormat = format
	}
	if v, ok := os.LookupEnv(EnvOutputFormat); ok {
		format, err := ParseOutputFormat(v)
		if err != nil {
			return inerrors.Wrap(err, EnvOutputFormat)
		}
		cfg.Output.Format = format
	}
	return nil
}

func envInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", name, value, inerrors.ErrInvalidConfig)
	}
	return n, nil
}
