package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ghodss/yaml"
)

// fileConfig mirrors [StructuredConfig] with the keys accepted in JSON and
// YAML config files. Durations are written as strings ("30m") or nanoseconds.
type fileConfig struct {
	App struct {
		BaseURL  string `json:"base_url"`
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		SecretKey             string   `json:"secret_key"`
		TokenIssuer           string   `json:"token_issuer"`
		VerifySalt            string   `json:"verify_salt"`
		ResetSalt             string   `json:"reset_salt"`
		SessionSalt           string   `json:"session_salt"`
		VerifyTokenTTL        Duration `json:"verify_token_ttl"`
		ResetTokenTTL         Duration `json:"reset_token_ttl"`
		SessionTokenTTL       Duration `json:"session_token_ttl"`
		PasswordHistoryDepth  int      `json:"password_history_depth"`
		PasswordHistoryRetain int      `json:"password_history_retain"`
		BcryptCost            int      `json:"bcrypt_cost"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Avatars struct {
			Driver      string `json:"driver"`
			Dir         string `json:"dir"`
			S3Bucket    string `json:"s3_bucket"`
			S3Region    string `json:"s3_region"`
			S3Endpoint  string `json:"s3_endpoint"`
			S3AccessKey string `json:"s3_access_key"`
			S3SecretKey string `json:"s3_secret_key"`
		} `json:"avatars,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		GRPCAddress     string   `json:"grpc_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Mail struct {
		Driver       string   `json:"driver"`
		From         string   `json:"from"`
		SMTPHost     string   `json:"smtp_host"`
		SMTPPort     int      `json:"smtp_port"`
		SMTPUsername string   `json:"smtp_username"`
		SMTPPassword string   `json:"smtp_password"`
		RelayURL     string   `json:"relay_url"`
		RelayToken   string   `json:"relay_token"`
		Timeout      Duration `json:"timeout"`
	} `json:"mail,omitempty"`

	Workers struct {
		SessionPurgeInterval Duration `json:"session_purge_interval"`
	} `json:"workers,omitempty"`
}

// parseFile reads a JSON config file, or a YAML one when the extension is
// .yaml or .yml. YAML is converted to JSON first so both formats share the
// same keys.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("error converting yaml config: %w", err)
		}
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			BaseURL:  fc.App.BaseURL,
			Version:  fc.App.Version,
			LogLevel: fc.App.LogLevel,
		},
		Auth: Auth{
			SecretKey:             fc.Auth.SecretKey,
			TokenIssuer:           fc.Auth.TokenIssuer,
			VerifySalt:            fc.Auth.VerifySalt,
			ResetSalt:             fc.Auth.ResetSalt,
			SessionSalt:           fc.Auth.SessionSalt,
			VerifyTokenTTL:        time.Duration(fc.Auth.VerifyTokenTTL),
			ResetTokenTTL:         time.Duration(fc.Auth.ResetTokenTTL),
			SessionTokenTTL:       time.Duration(fc.Auth.SessionTokenTTL),
			PasswordHistoryDepth:  fc.Auth.PasswordHistoryDepth,
			PasswordHistoryRetain: fc.Auth.PasswordHistoryRetain,
			BcryptCost:            fc.Auth.BcryptCost,
		},
		Storage: Storage{
			DB: DB{
				Driver: fc.Storage.DB.Driver,
				DSN:    fc.Storage.DB.DSN,
			},
			Avatars: Avatars{
				Driver:      fc.Storage.Avatars.Driver,
				Dir:         fc.Storage.Avatars.Dir,
				S3Bucket:    fc.Storage.Avatars.S3Bucket,
				S3Region:    fc.Storage.Avatars.S3Region,
				S3Endpoint:  fc.Storage.Avatars.S3Endpoint,
				S3AccessKey: fc.Storage.Avatars.S3AccessKey,
				S3SecretKey: fc.Storage.Avatars.S3SecretKey,
			},
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			GRPCAddress:     fc.Server.GRPCAddress,
			RequestTimeout:  time.Duration(fc.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fc.Server.ShutdownTimeout),
		},
		Mail: Mail{
			Driver:       fc.Mail.Driver,
			From:         fc.Mail.From,
			SMTPHost:     fc.Mail.SMTPHost,
			SMTPPort:     fc.Mail.SMTPPort,
			SMTPUsername: fc.Mail.SMTPUsername,
			SMTPPassword: fc.Mail.SMTPPassword,
			RelayURL:     fc.Mail.RelayURL,
			RelayToken:   fc.Mail.RelayToken,
			Timeout:      time.Duration(fc.Mail.Timeout),
		},
		Workers: Workers{
			SessionPurgeInterval: time.Duration(fc.Workers.SessionPurgeInterval),
		},
	}
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
