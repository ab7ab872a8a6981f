package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server configuration flags from args (without the
// program name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-driver database driver (postgres or sqlite)
//	-d database DSN
//	-c/-config config file path (JSON or YAML)
//	-secret-key token secret key
//	-token-issuer token issuer name
//	-verify-ttl verification token lifetime (e.g., "30m")
//	-reset-ttl reset token lifetime
//	-session-ttl session token lifetime
//	-history-depth number of recent passwords that may not be reused
//	-history-retain number of password history rows kept per user (0 keeps all)
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-base-url public base URL used in emailed links
//	-log-level log level
//	-mail-driver notification channel (log, smtp, http)
//	-avatars-dir avatar directory for the file driver
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var (
		driver, databaseDSN, configPath string
		secretKey, tokenIssuer          string
		verifyTTL, resetTTL, sessionTTL time.Duration
		historyDepth, historyRetain     int
		requestTimeout                  time.Duration
		baseURL, logLevel, mailDriver   string
		avatarsDir                      string
	)

	fs := flag.NewFlagSet("go-blog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&driver, "driver", "", "Database driver (postgres, sqlite)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&configPath, "c", "", "Config file path")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.StringVar(&secretKey, "secret-key", "", "Token secret key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&verifyTTL, "verify-ttl", 0, "Verification token lifetime")
	fs.DurationVar(&resetTTL, "reset-ttl", 0, "Reset token lifetime")
	fs.DurationVar(&sessionTTL, "session-ttl", 0, "Session token lifetime")
	fs.IntVar(&historyDepth, "history-depth", 0, "Recent passwords that may not be reused")
	fs.IntVar(&historyRetain, "history-retain", 0, "Password history rows kept per user")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&baseURL, "base-url", "", "Public base URL")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&mailDriver, "mail-driver", "", "Mail driver (log, smtp, http)")
	fs.StringVar(&avatarsDir, "avatars-dir", "", "Avatar directory")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			BaseURL:  baseURL,
			LogLevel: logLevel,
		},
		Auth: Auth{
			SecretKey:             secretKey,
			TokenIssuer:           tokenIssuer,
			VerifyTokenTTL:        verifyTTL,
			ResetTokenTTL:         resetTTL,
			SessionTokenTTL:       sessionTTL,
			PasswordHistoryDepth:  historyDepth,
			PasswordHistoryRetain: historyRetain,
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    databaseDSN,
			},
			Avatars: Avatars{
				Dir: avatarsDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Mail: Mail{
			Driver: mailDriver,
		},
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is empty or
// "localhost", and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
