package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/chamindaf/lion-svc/internal/pkg/clock"
	"github.com/chamindaf/lion-svc/internal/pkg/config"
	"github.com/chamindaf/lion-svc/internal/pkg/goroutine"
	"github.com/chamindaf/lion-svc/internal/pkg/hash"
	"github.com/chamindaf/lion-svc/internal/pkg/idempotency"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/mail"
	"github.com/chamindaf/lion-svc/internal/pkg/messaging"
	"github.com/chamindaf/lion-svc/internal/pkg/router"
	"github.com/chamindaf/lion-svc/internal/pkg/uid"
	"github.com/chamindaf/lion-svc/internal/pkg/validator"
	"github.com/chamindaf/lion-svc/migrations"
)

func (a *App) initConfig(path string) func(context.Context) error {
	return func(ctx context.Context) error {
		cfg, err := config.NewViper(path)
		if err != nil {
			return fmt.Errorf("app: load config: %w", err)
		}
		a.cfg = cfg

		return nil
	}
}

func (a *App) initInstrument(ctx context.Context) error {
	ins, err := instrument.New(ctx, instrument.Options{
		ServiceName:    a.cfg.GetString("app.name"),
		ServiceVersion: a.cfg.GetString("app.version"),
		OTLPEndpoint:   a.cfg.GetString("instrument.otlp_endpoint"),
		LogLevel:       a.cfg.GetString("instrument.log_level"),
		MaskedKeys:     a.cfg.GetArray("instrument.masked_keys"),
	})
	if err != nil {
		return err
	}

	a.ins = ins
	a.addCloser(ins.Close)

	return nil
}

func (a *App) initLibraries(ctx context.Context) error {
	a.clock = clock.UTCClocker{}
	a.uuid = uid.NewUUID()

	snow, err := uid.NewSnowflake()
	if err != nil {
		return err
	}
	a.snowflake = snow

	a.hash = hash.NewBcrypt(
		a.cfg.GetInt("hash.bcrypt_cost"),
		a.cfg.GetString("hash.pepper"),
	)
	a.goroutine = goroutine.New(a.cfg.GetInt("app.max_goroutine"))

	v10, err := validator.NewV10Validator()
	if err != nil {
		return err
	}
	a.validator = v10

	signer, err := jwt.NewSymmetric(jwt.Config{
		Secret:     a.cfg.GetBinary("jwt.secret"),
		Algorithm:  a.cfg.GetString("jwt.algorithm"),
		Issuer:     a.cfg.GetString("jwt.issuer"),
		Audiences:  a.cfg.GetArray("jwt.audiences"),
		AccessTTL:  a.cfg.GetMinute("jwt.access_ttl_minutes"),
		RefreshTTL: a.cfg.GetDay("jwt.refresh_ttl_days"),
		Clock:      a.clock,
		UUID:       a.uuid,
	})
	if err != nil {
		return err
	}
	a.jwt = signer

	return nil
}

func (a *App) initDatabase(ctx context.Context) error {
	url := a.cfg.GetString("database.url")

	if err := a.migrateDatabase(url); err != nil {
		return fmt.Errorf("app: migrate database: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("app: parse database url: %w", err)
	}
	if n := a.cfg.GetInt32("database.max_conns"); n > 0 {
		poolCfg.MaxConns = n
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("app: connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return fmt.Errorf("app: ping database: %w", err)
	}

	a.db = pool
	a.addCloser(func(context.Context) error {
		pool.Close()

		return nil
	})

	return nil
}

func (a *App) migrateDatabase(url string) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}

	// the pgx migrate driver registers under its own scheme
	m, err := migrate.NewWithSourceInstance("iofs", src,
		strings.Replace(url, "postgres://", "pgx5://", 1))
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (a *App) initCache(ctx context.Context) error {
	opts, err := redis.ParseURL(a.cfg.GetString("redis.url"))
	if err != nil {
		return fmt.Errorf("app: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("app: ping redis: %w", err)
	}

	a.redis = client
	a.addCloser(func(context.Context) error { return client.Close() })

	a.idem = idempotency.NewStateTracker(client,
		a.cfg.GetString("app.name"),
		a.cfg.GetHour("redis.idempotency_ttl_hours"),
	)

	return nil
}

func (a *App) initMail(ctx context.Context) error {
	a.mailer = mail.NewSMTP(mail.SMTPConfig{
		Host:     a.cfg.GetString("mail.host"),
		Port:     a.cfg.GetInt("mail.port"),
		Username: a.cfg.GetString("mail.username"),
		Password: a.cfg.GetString("mail.password"),
		From:     a.cfg.GetString("mail.from"),
	})

	return nil
}

func (a *App) initMessaging(ctx context.Context) error {
	driver := a.cfg.GetString("messaging.driver")

	msg, err := messaging.NewFromDriver(ctx, driver, messaging.DriverConfig{
		NATS: messaging.NATSConfig{
			URL: a.cfg.GetString("messaging.nats.url"),
		},
		NSQ: messaging.NSQConfig{
			ProducerAddr:        a.cfg.GetString("messaging.nsq.producer_addr"),
			ConsumerNSQDAddrs:   a.cfg.GetArray("messaging.nsq.nsqd_addrs"),
			ConsumerLookupAddrs: a.cfg.GetArray("messaging.nsq.lookupd_addrs"),
		},
		Kafka: messaging.KafkaConfig{
			Brokers: a.cfg.GetArray("messaging.kafka.brokers"),
		},
		PubSub: messaging.PubSubConfig{
			ProjectID: a.cfg.GetString("messaging.pubsub.project_id"),
		},
	})
	if err != nil {
		return fmt.Errorf("app: connect messaging (%s): %w", driver, err)
	}

	a.messaging = msg
	a.addCloser(func(context.Context) error { return msg.Close() })

	return nil
}

func (a *App) initRouter(ctx context.Context) error {
	a.router = router.New(router.Config{
		Cfg: a.cfg,
		Ins: a.ins,
		JWT: a.jwt,
		UID: a.uuid,
	})

	return nil
}
