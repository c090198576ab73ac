package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/sharkbite/internal/flagx"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable SharkBite reads.
const EnvPrefix = "SHARKBITE_"

const defaultEnvFile = ".env"

func envBindings(cfg *Config) map[string]*string {
	return map[string]*string{
		"STORE_DRIVER":          &cfg.StoreDriver,
		"STORE_DSN":             &cfg.StoreDSN,
		"LOG_LEVEL":             &cfg.LogLevel,
		"LOG_FORMAT":            &cfg.LogFormat,
		"EXPORT_DIR":            &cfg.ExportDir,
		"TIMEZONE":              &cfg.Timezone,
		"ACTIVE_SUBJECT_POLICY": &cfg.ActiveSubjectPolicy,
		"S3_BUCKET":             &cfg.S3Bucket,
		"S3_PREFIX":             &cfg.S3Prefix,
		"S3_REGION":             &cfg.S3Region,
		"S3_ENDPOINT":           &cfg.S3Endpoint,
		"S3_ACCESS_KEY":         &cfg.S3AccessKey,
		"S3_SECRET_KEY":         &cfg.S3SecretKey,
	}
}

// parseEnv overlays values from the dotenv file and the process
// environment. An explicitly named dotenv file must exist; the default one
// is optional.
func parseEnv(cfg *Config, args []string, lookup LookupEnv) error {
	path := flagx.EnvPath(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	fileVals, err := godotenv.Read(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", path, err)
		}
		fileVals = map[string]string{}
	}

	for key, dst := range envBindings(cfg) {
		name := EnvPrefix + key
		if v, ok := fileVals[name]; ok {
			*dst = v
		}
		if lookup == nil {
			continue
		}
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	return nil
}
