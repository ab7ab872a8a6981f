package config

import "time"

const defaultEnvFile = ".env"

// defaultConfig returns the lowest-priority layer. Secrets have no default.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			BaseURL:  "http://localhost:8080",
			Version:  "dev",
			LogLevel: "info",
		},
		Auth: Auth{
			TokenIssuer:           "go-blog",
			VerifySalt:            "email-verify",
			ResetSalt:             "password-reset",
			SessionSalt:           "session-access",
			VerifyTokenTTL:        30 * time.Minute,
			ResetTokenTTL:         30 * time.Minute,
			SessionTokenTTL:       time.Hour,
			PasswordHistoryDepth:  5,
			PasswordHistoryRetain: 10,
			BcryptCost:            12,
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverSQLite,
				DSN:    "instance/site.db",
			},
			Avatars: Avatars{
				Driver: AvatarDriverFile,
				Dir:    "static/profile_pics",
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Mail: Mail{
			Driver:   MailDriverLog,
			From:     "noreply@demo.com",
			SMTPPort: 587,
			Timeout:  10 * time.Second,
		},
		Workers: Workers{
			SessionPurgeInterval: time.Hour,
		},
	}
}
