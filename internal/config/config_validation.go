// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AvatarDriverFile = "file"
	AvatarDriverS3   = "s3"

	MailDriverLog  = "log"
	MailDriverSMTP = "smtp"
	MailDriverHTTP = "http"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or every violated group joined
// into one error otherwise.
func (cfg *StructuredConfig) validate() error {
	return errors.Join(
		cfg.Auth.validate(),
		cfg.Storage.validate(),
		cfg.Server.validate(),
		cfg.Mail.validate(),
		cfg.Workers.validate(),
	)
}

func (a Auth) validate() error {
	switch {
	case a.SecretKey == "":
		return fmt.Errorf("%w: secret key is required", ErrInvalidAuthConfigs)
	case a.TokenIssuer == "":
		return fmt.Errorf("%w: token issuer is required", ErrInvalidAuthConfigs)
	case a.VerifySalt == "" || a.ResetSalt == "" || a.SessionSalt == "":
		return fmt.Errorf("%w: every token purpose needs a salt", ErrInvalidAuthConfigs)
	case a.VerifySalt == a.ResetSalt || a.VerifySalt == a.SessionSalt || a.ResetSalt == a.SessionSalt:
		return fmt.Errorf("%w: token purpose salts must be distinct", ErrInvalidAuthConfigs)
	case a.VerifyTokenTTL <= 0 || a.ResetTokenTTL <= 0 || a.SessionTokenTTL <= 0:
		return fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidAuthConfigs)
	case a.PasswordHistoryDepth <= 0:
		return fmt.Errorf("%w: password history depth must be positive", ErrInvalidAuthConfigs)
	case a.PasswordHistoryRetain < 0 || (a.PasswordHistoryRetain > 0 && a.PasswordHistoryRetain < a.PasswordHistoryDepth):
		return fmt.Errorf("%w: password history retention must be 0 or at least the depth", ErrInvalidAuthConfigs)
	case a.BcryptCost < 4 || a.BcryptCost > 31:
		return fmt.Errorf("%w: bcrypt cost must be in range 4-31", ErrInvalidAuthConfigs)
	}

	return nil
}

func (s Storage) validate() error {
	if err := s.DB.validate(); err != nil {
		return err
	}

	switch s.Avatars.Driver {
	case AvatarDriverFile:
		if s.Avatars.Dir == "" {
			return fmt.Errorf("%w: avatar directory is required", ErrInvalidStorageConfigs)
		}
	case AvatarDriverS3:
		if s.Avatars.S3Bucket == "" {
			return fmt.Errorf("%w: avatar bucket is required", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown avatar driver %q", ErrInvalidStorageConfigs, s.Avatars.Driver)
	}

	return nil
}

func (d DB) validate() error {
	if d.Driver != DriverPostgres && d.Driver != DriverSQLite {
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidStorageConfigs, d.Driver)
	}
	if d.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	return nil
}

func (s Server) validate() error {
	if s.HTTPAddress == "" && s.GRPCAddress == "" {
		return fmt.Errorf("%w: no listen address", ErrInvalidServerConfigs)
	}
	if s.RequestTimeout <= 0 || s.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidServerConfigs)
	}

	return nil
}

func (m Mail) validate() error {
	switch m.Driver {
	case MailDriverLog:
	case MailDriverSMTP:
		if m.SMTPHost == "" || m.SMTPPort <= 0 || m.From == "" {
			return fmt.Errorf("%w: smtp driver needs host, port and sender", ErrInvalidMailConfigs)
		}
	case MailDriverHTTP:
		if m.RelayURL == "" {
			return fmt.Errorf("%w: http driver needs a relay url", ErrInvalidMailConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown mail driver %q", ErrInvalidMailConfigs, m.Driver)
	}

	return nil
}

func (w Workers) validate() error {
	if w.SessionPurgeInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ViewerConfig) validate() error {
	return cfg.DB.validate()
}
