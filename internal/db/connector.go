package db

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

// Pool limits for a single-shot append. One connection does the work; a
// small ceiling covers pgx housekeeping without hoarding server slots.
const (
	defaultMaxConns        = 2
	defaultMinConns        = 1
	defaultMaxConnIdleTime = 5 * time.Minute
)

// Connector establishes a connection pool to the destination database.
// Implementations differ only in how they authenticate.
type Connector interface {
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}

// NewConnector picks the Connector implementation for the configured
// authentication method.
func NewConnector(config *pdf2db.ConnectionConfig) (Connector, error) {
	switch config.AuthMethod {
	case pdf2db.AuthMethodStandard, "":
		return &standardConnector{config: config}, nil
	case pdf2db.AuthMethodAWSIAM:
		provider, err := newAWSIAMTokenProvider(config)
		if err != nil {
			return nil, err
		}
		return &tokenConnector{config: config, provider: provider}, nil
	case pdf2db.AuthMethodAzureEntraID:
		provider, err := newAzureTokenProvider(config)
		if err != nil {
			return nil, err
		}
		return &tokenConnector{config: config, provider: provider}, nil
	case pdf2db.AuthMethodGoogleIAM:
		if config.GoogleInstance == "" {
			return nil, fmt.Errorf("google-iam auth requires a Cloud SQL instance name (project:region:instance): %w", pdf2db.ErrInvalidConfig)
		}
		return &googleConnector{config: config}, nil
	default:
		return nil, fmt.Errorf("auth method %q: %w", config.AuthMethod, pdf2db.ErrUnsupportedAuthMethod)
	}
}

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = defaultMaxConns
	poolConfig.MinConns = defaultMinConns
	poolConfig.MaxConnIdleTime = defaultMaxConnIdleTime
}

// connectAndPing builds the pool from a connection string and verifies it
// with a ping. One attempt only; transient failures propagate to the
// caller rather than being retried.
func connectAndPing(ctx context.Context, connStr string, config *pdf2db.ConnectionConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection config: %w", err)
	}

	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, config)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, config)
	}
	return pool, nil
}

// standardConnector authenticates with username/password.
type standardConnector struct {
	config *pdf2db.ConnectionConfig
}

func (c *standardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	return connectAndPing(ctx, BuildConnectionString(c.config), c.config)
}

// tokenConnector covers providers that hand out short-lived tokens used as
// the PostgreSQL password (AWS RDS IAM, Azure Entra ID).
type tokenConnector struct {
	config   *pdf2db.ConnectionConfig
	provider tokenProvider
}

func (c *tokenConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	token, expiresOn, err := c.provider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire token from %s: %w", c.provider, err)
	}
	if time.Until(expiresOn) < time.Minute {
		return nil, fmt.Errorf("token from %s expires in %s: %w",
			c.provider, time.Until(expiresOn).Round(time.Second), pdf2db.ErrConnectionFailed)
	}

	withToken := *c.config
	withToken.Password = token
	return connectAndPing(ctx, BuildConnectionString(&withToken), c.config)
}

// googleConnector dials through the Cloud SQL Go Connector with IAM
// authentication; the connector handles TLS and credentials itself.
// Implements io.Closer: the dialer must be released after the pool closes.
type googleConnector struct {
	config *pdf2db.ConnectionConfig
	dialer *cloudsqlconn.Dialer
}

func (c *googleConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("create Cloud SQL dialer: %w", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s dbname=%s sslmode=disable",
		c.config.GoogleInstance, c.config.Username, c.config.Database)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("parse connection config: %w", err)
	}

	instance := c.config.GoogleInstance
	poolConfig.ConnConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialer.Dial(ctx, instance)
	}
	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		dialer.Close()
		return nil, wrapConnectionError(err, c.config)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		dialer.Close()
		return nil, wrapConnectionError(err, c.config)
	}

	c.dialer = dialer
	return pool, nil
}

// Close releases the Cloud SQL dialer. Call after the pool is closed.
func (c *googleConnector) Close() error {
	if c.dialer != nil {
		c.dialer.Close()
		c.dialer = nil
	}
	return nil
}

// wrapConnectionError turns raw pgx connection errors into diagnostics a
// user can act on, tagged with ErrConnectionFailed for exit-code mapping.
func wrapConnectionError(err error, config *pdf2db.ConnectionConfig) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf("connection refused to %s (is PostgreSQL running? check: pg_isready -h %s -p %d): %w",
			addr, config.Host, config.Port, pdf2db.ErrConnectionFailed)

	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf("cannot resolve host %q: %w", config.Host, pdf2db.ErrConnectionFailed)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf("password authentication failed for database %q (check credentials in $%s): %w",
			config.Database, pdf2db.EnvDatabaseURL, pdf2db.ErrConnectionFailed)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf("database %q does not exist on %s: %w", config.Database, addr, pdf2db.ErrConnectionFailed)

	default:
		return fmt.Errorf("connect to %s: %v: %w", addr, err, pdf2db.ErrConnectionFailed)
	}
}
