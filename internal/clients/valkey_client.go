package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

const VALKEY_RETRY_DELAY = 250 * time.Millisecond

type ValkeyConfig struct {
	Address  string
	Password string
	UseTLS   bool
}

// ValkeyClient is a byte-oriented key/value store with per-key expiry,
// used as a shared headline cache. Broken connections are re-dialed by
// valkey-go itself, so the client is never swapped.
type ValkeyClient struct {
	Client valkey.Client
}

func newValkey(cfg ValkeyConfig) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			cfg.Address,
		},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	return client, nil
}

func NewValkeyClient(cfg ValkeyConfig) (*ValkeyClient, error) {
	client, err := newValkey(cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", cfg.Address))
	return &ValkeyClient{Client: client}, nil
}

func (vc *ValkeyClient) Close() {
	vc.Client.Close()
}

// Get returns the value stored under key. A missing key is not an error.
func (vc *ValkeyClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Get().Key(key).Build()
	}, 2)
	value, err := res.AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("[ValkeyClient] get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key for ttl, rounded down to whole seconds.
func (vc *ValkeyClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Set().Key(key).Value(valkey.BinaryString(value)).ExSeconds(seconds).Build()
	}, 2)
	if err := res.Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] set %s: %w", key, err)
	}
	return nil
}

// DoWithRetry builds and runs a command up to retries times. Commands are
// rebuilt per attempt since valkey recycles them after execution.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	c := vc.Client
	for i := 0; i < retries; i++ {
		result = c.Do(ctx, build(c))
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		if i == retries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return result
		case <-time.After(VALKEY_RETRY_DELAY):
		}
	}

	return result
}
