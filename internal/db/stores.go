package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"holocene/internal/config"
)

// Store names used in logs, error details and health output.
const (
	StoreHolocene  = "holocene"
	StoreMIK       = "mik"
	StoreQR        = "qr"
	StoreQRReports = "qr_reports"
	StoreAltData   = "altdata"
)

const defaultPingTimeout = 10 * time.Second

// PoolOptions tunes every pool opened by OpenStores.
type PoolOptions struct {
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
	CommandTimeout  time.Duration
	Trace           bool
}

func (o PoolOptions) pingTimeout() time.Duration {
	if o.PingTimeout <= 0 {
		return defaultPingTimeout
	}
	return o.PingTimeout
}

// PoolOptionsFromConfig copies the shared tuning parameters.
func PoolOptionsFromConfig(cfg config.DatabaseConfig) PoolOptions {
	return PoolOptions{
		MaxConns:        cfg.MaxConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		PingTimeout:     cfg.PingTimeout,
		CommandTimeout:  cfg.SQLTimeout,
		Trace:           cfg.TraceQueries,
	}
}

// Stores holds one executor per named database. Optional stores without a
// connection string are present but unconfigured, so repositories fail per
// call with internal_store_not_configured instead of at startup.
type Stores struct {
	Holocene  *SQLExecutor
	MIK       *SQLExecutor
	QR        *PGExecutor
	QRReports *PGExecutor
	AltData   *PGExecutor
}

// OpenStores connects to every configured store and pings it. Any failure
// closes what was already opened and aborts.
func OpenStores(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Stores, error) {
	opts := PoolOptionsFromConfig(cfg)
	s := &Stores{}
	var err error

	openSQL := func(name string, dsn config.SecretString) *SQLExecutor {
		if err != nil {
			return nil
		}
		if !dsn.IsSet() {
			return NewSQLExecutor(name, nil, opts.CommandTimeout, logger)
		}
		var e *SQLExecutor
		e, err = OpenSQLServer(ctx, name, dsn, opts, logger)
		if err == nil {
			logger.Info().Str("store", name).Msg("connected to sql server")
		}
		return e
	}
	openPG := func(name string, dsn config.SecretString) *PGExecutor {
		if err != nil {
			return nil
		}
		if !dsn.IsSet() {
			return NewPGExecutor(name, nil, opts.CommandTimeout, logger)
		}
		var e *PGExecutor
		e, err = OpenPostgres(ctx, name, dsn, opts, logger)
		if err == nil {
			logger.Info().Str("store", name).Msg("connected to postgres")
		}
		return e
	}

	s.Holocene = openSQL(StoreHolocene, cfg.Holocene)
	s.MIK = openSQL(StoreMIK, cfg.MIK)
	s.QR = openPG(StoreQR, cfg.QR)
	s.QRReports = openPG(StoreQRReports, cfg.QRReports)
	s.AltData = openPG(StoreAltData, cfg.AltData)

	if err != nil {
		s.Close()
		return nil, fmt.Errorf("opening stores: %w", err)
	}
	return s, nil
}

// StoreStatus is the health of one store.
type StoreStatus struct {
	Store      string `json:"store" yaml:"store"`
	Configured bool   `json:"configured" yaml:"configured"`
	Healthy    bool   `json:"healthy" yaml:"healthy"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

type pinger interface {
	Store() string
	Configured() bool
	Ping(ctx context.Context) error
}

func (s *Stores) all() []pinger {
	var out []pinger
	if s.Holocene != nil {
		out = append(out, s.Holocene)
	}
	if s.MIK != nil {
		out = append(out, s.MIK)
	}
	if s.QR != nil {
		out = append(out, s.QR)
	}
	if s.QRReports != nil {
		out = append(out, s.QRReports)
	}
	if s.AltData != nil {
		out = append(out, s.AltData)
	}
	return out
}

// Ping checks every configured store concurrently. Unconfigured stores are
// reported without being contacted.
func (s *Stores) Ping(ctx context.Context) []StoreStatus {
	stores := s.all()
	out := make([]StoreStatus, len(stores))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range stores {
		out[i] = StoreStatus{Store: p.Store(), Configured: p.Configured()}
		if !p.Configured() {
			continue
		}
		g.Go(func() error {
			if err := p.Ping(gctx); err != nil {
				out[i].Error = err.Error()
				return nil
			}
			out[i].Healthy = true
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Close releases every pool.
func (s *Stores) Close() error {
	var errs []error
	if s.Holocene != nil {
		errs = append(errs, s.Holocene.Close())
	}
	if s.MIK != nil {
		errs = append(errs, s.MIK.Close())
	}
	for _, pg := range []*PGExecutor{s.QR, s.QRReports, s.AltData} {
		if pg != nil {
			pg.Close()
		}
	}
	return errors.Join(errs...)
}
