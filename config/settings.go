// govdir/config/settings.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds everything the server needs at runtime. Values come from
// defaults, then an optional YAML file, then GOVDIR_* environment variables,
// in that order of precedence.
type Settings struct {
	Port       string        `yaml:"port"`
	DBPath     string        `yaml:"db_path"`
	BackupDir  string        `yaml:"backup_dir"`
	SessionTTL string        `yaml:"session_ttl"`
	Admin      AdminSettings `yaml:"admin"`
	S3         S3Settings    `yaml:"s3"`
}

// AdminSettings seeds the initial administrator account. If Email is empty no
// account is seeded and moderation is only reachable once one is created by
// other means.
type AdminSettings struct {
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	DisplayName string `yaml:"display_name"`
}

// S3Settings configures optional off-site upload of database backups.
type S3Settings struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Port:       DefaultPort,
		DBPath:     DefaultDBPath,
		BackupDir:  DefaultBackupDir,
		SessionTTL: DefaultSessionTTL,
		Admin:      AdminSettings{DisplayName: "Administrator"},
		S3:         S3Settings{Region: "us-east-1", UseSSL: true},
	}
}

// Load reads settings from the given YAML file (optional; "" means
// ./govdir.yaml if present) and applies environment overrides.
func Load(path string) (Settings, error) {
	s := Defaults()

	if path == "" {
		if _, err := os.Stat("./govdir.yaml"); err == nil {
			path = "./govdir.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("could not read config file %s: %w", path, err)
		}
		parsed, err := parse(data)
		if err != nil {
			return s, fmt.Errorf("could not parse config file %s: %w", path, err)
		}
		s = parsed
	}

	s.applyEnv()
	return s, nil
}

// parse unmarshals YAML on top of the defaults.
func parse(data []byte) (Settings, error) {
	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Settings) applyEnv() {
	overrideString(&s.Port, "GOVDIR_PORT")
	overrideString(&s.DBPath, "GOVDIR_DB_PATH")
	overrideString(&s.BackupDir, "GOVDIR_BACKUP_DIR")
	overrideString(&s.SessionTTL, "GOVDIR_SESSION_TTL")
	overrideString(&s.Admin.Email, "GOVDIR_ADMIN_EMAIL")
	overrideString(&s.Admin.Password, "GOVDIR_ADMIN_PASSWORD")
	overrideString(&s.Admin.DisplayName, "GOVDIR_ADMIN_NAME")
	overrideString(&s.S3.Endpoint, "GOVDIR_S3_ENDPOINT")
	overrideString(&s.S3.AccessKey, "GOVDIR_S3_ACCESS_KEY")
	overrideString(&s.S3.SecretKey, "GOVDIR_S3_SECRET_KEY")
	overrideString(&s.S3.Bucket, "GOVDIR_S3_BUCKET")
	overrideString(&s.S3.Region, "GOVDIR_S3_REGION")
	if v, ok := os.LookupEnv("GOVDIR_S3_ENABLED"); ok {
		s.S3.Enabled = v == "true"
	}
	if v, ok := os.LookupEnv("GOVDIR_S3_USE_SSL"); ok {
		s.S3.UseSSL = v == "true"
	}
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
