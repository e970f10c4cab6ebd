package ddns

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/netip"
	"time"

	"github.com/stsap/route53ddns/route53"
)

// DefaultResolver is used when no resolver option is given.
var DefaultResolver Resolver = InterfaceResolver()

var discard = log.New(io.Discard, "", log.LstdFlags)

// Resolver produces the set of addresses that DNS records should point at.
type Resolver interface {
	Resolve(context.Context) ([]netip.Addr, error)
}

// Provider applies addrs to every host in one atomic submission: either
// all hosts are updated together or the call fails as a whole.
type Provider interface {
	SetDNSRecords(ctx context.Context, zone string, hosts []string, addrs []netip.Addr) error
}

// DDNSClient runs one resolve-and-update pass.
type DDNSClient interface {
	RunDDNS(ctx context.Context) error
}

// New returns a client that updates hosts inside the hosted zone named
// zone. A provider option such as [UsingRoute53] is required.
func New(zone string, hosts []string, options ...Option) (DDNSClient, error) {
	if zone == "" {
		return nil, fmt.Errorf("ddns.New: zone cannot be empty")
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("ddns.New: at least one host is required")
	}
	c := &client{
		Resolver: DefaultResolver,
		zone:     zone,
		hosts:    hosts,
	}
	for i, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("ddns.New: option %d returned an error: %w", i, err)
		}
	}
	if c.Provider == nil {
		return nil, fmt.Errorf("ddns.New: no DNS provider was registered and there is no default option - use ddns.UsingRoute53 or similar")
	}

	// propagates the logger to dependencies registered before WithLogger ran
	withLogger(c.logger)(c)
	return c, nil
}

// Option configures the client returned by New.
type Option func(*client) error

// UsingRoute53 registers a Route 53 provider with default client settings.
func UsingRoute53(accessKey, secretKey string) Option {
	return UsingRoute53Config(route53.NewConfig(accessKey, secretKey))
}

// UsingRoute53Config registers a Route 53 provider built from cfg, for
// callers that need a custom signature method, time source or endpoint.
func UsingRoute53Config(cfg route53.Config) Option {
	return func(c *client) error {
		c.Provider = NewRoute53(route53.New(cfg))
		return nil
	}
}

// UsingProvider registers p as the DNS provider.
func UsingProvider(p Provider) Option {
	return func(c *client) error {
		if p == nil {
			return fmt.Errorf("provider cannot be nil")
		}
		c.Provider = p
		return nil
	}
}

// UsingResolver registers the source of addresses. A nil resolver restores
// the default.
func UsingResolver(resolver Resolver) Option {
	return func(c *client) error {
		if resolver == nil {
			resolver = DefaultResolver
		}
		c.Resolver = resolver
		return nil
	}
}

// UsingWebResolver registers a public-IP web lookup over the given
// service URLs.
func UsingWebResolver(serviceURL ...string) Option {
	return func(c *client) error {
		r, err := WebResolver(serviceURL...)
		if err != nil {
			return err
		}
		c.Resolver = r
		return nil
	}
}

// WithTTL sets the TTL in seconds applied to records the provider writes.
func WithTTL(seconds int) Option {
	return func(c *client) error {
		if seconds <= 0 {
			return fmt.Errorf("ttl must be positive, got %d", seconds)
		}
		c.ttl = seconds
		return nil
	}
}

// WithLogger directs progress logging to logger. The default discards.
func WithLogger(logger *log.Logger) Option {
	return func(c *client) error {
		c.logger = logger
		return nil
	}
}

func withLogger(logger *log.Logger) Option {
	return func(c *client) error {
		if logger == nil {
			logger = discard
		}
		c.logger = logger
		type setLogger interface {
			SetLogger(*log.Logger)
		}
		if p, ok := c.Provider.(setLogger); ok {
			p.SetLogger(logger)
		}
		if r, ok := c.Resolver.(setLogger); ok {
			r.SetLogger(logger)
		}
		if p, ok := c.Provider.(*Route53Provider); ok && c.ttl > 0 {
			p.TTL = c.ttl
		}
		return nil
	}
}

// UsingHTTPClient replaces the HTTP transport used by the resolver and
// provider, where they accept one.
func UsingHTTPClient(httpclient *http.Client) Option {
	return func(c *client) error {
		if httpclient == nil {
			httpclient = http.DefaultClient
		}
		type setHTTPClient interface {
			SetHTTPClient(*http.Client)
		}
		if r, ok := c.Resolver.(setHTTPClient); ok {
			r.SetHTTPClient(httpclient)
		}
		if p, ok := c.Provider.(setHTTPClient); ok {
			p.SetHTTPClient(httpclient)
		}
		return nil
	}
}

type client struct {
	Resolver
	Provider
	logger *log.Logger
	zone   string
	hosts  []string
	ttl    int
}

func (c *client) RunDDNS(ctx context.Context) error {
	addrs, err := c.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("error getting IPs: %w", err)
	}
	c.logger.Printf("resolved IPs: %+v\n", addrs)

	if err := c.SetDNSRecords(ctx, c.zone, c.hosts, addrs); err != nil {
		return fmt.Errorf("error updating %v with new IPs: %w", c.hosts, err)
	}
	return nil
}

type logf interface {
	Printf(string, ...any)
}

// RunDaemon starts ddnsClient as a goroutine, re-running it every interval
// until ctx is done.
//
// A nil logger falls back to the logger configured in the client when the
// client came from this library, else log output is discarded.
func RunDaemon(ddnsClient DDNSClient, ctx context.Context, interval time.Duration, logger logf) {
	if interval < 1*time.Minute {
		interval = 1 * time.Minute
	}
	if logger == nil {
		if c, ok := ddnsClient.(*client); ok && c.logger != nil {
			logger = c.logger
		} else {
			logger = discard
		}
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := ddnsClient.RunDDNS(ctx)
				if err != nil {
					logger.Printf("ddns.RunDaemon: %s", err)
				}
			}
		}
	}()
}
