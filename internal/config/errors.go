package config

import "errors"

// Validation errors returned when a required configuration group is
// incomplete or inconsistent. They are joined when several groups fail.
var (
	// ErrInvalidAuthConfigs indicates missing secrets or invalid token and
	// password-history parameters.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidStorageConfigs indicates an unknown driver or empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates that no listen address is configured
	// or a timeout is not positive.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidMailConfigs indicates an unknown mail driver or missing
	// driver settings.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero purge interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
