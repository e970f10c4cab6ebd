package route53

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/miekg/dns"
)

// Client executes API actions over an HTTP transport. Calls are
// synchronous and never retried. A Client is cheap; it holds no state
// beyond its Config and the transport, but it is not meant for concurrent
// mutation of that Config.
type Client struct {
	Config     Config
	HTTPClient *http.Client
}

// New returns a Client for cfg using http.DefaultClient as transport.
func New(cfg Config) *Client {
	return &Client{Config: cfg, HTTPClient: http.DefaultClient}
}

// Do builds, signs and executes action with params, then decodes the
// response per the configured format.
func (c *Client) Do(ctx context.Context, action Action, params map[string]string) (any, error) {
	req, err := Build(ctx, c.Config, action, params)
	if err != nil {
		return nil, err
	}
	transport := c.HTTPClient
	if transport == nil {
		transport = http.DefaultClient
	}
	resp, err := transport.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return Decode(resp, c.Config)
}

// do runs action and decodes into a Value tree regardless of the
// configured output format, for callers that navigate the result.
func (c *Client) do(ctx context.Context, action Action, params map[string]string) (Value, error) {
	structured := &Client{Config: c.Config.WithFormat(FormatValue), HTTPClient: c.HTTPClient}
	v, err := structured.Do(ctx, action, params)
	if err != nil {
		return nil, err
	}
	return v.(Value), nil
}

// ListHostedZones returns the decoded ListHostedZonesResponse document.
func (c *Client) ListHostedZones(ctx context.Context) (Value, error) {
	return c.do(ctx, ListHostedZones, nil)
}

// ListResourceRecordSets returns the decoded record sets of a zone.
func (c *Client) ListResourceRecordSets(ctx context.Context, zoneID string) (Value, error) {
	return c.do(ctx, ListResourceRecordSets, map[string]string{"zoneId": zoneID})
}

// ZoneIDByName finds the hosted zone whose name is exactly name and
// returns its bare id (the "/hostedzone/" prefix stripped). The name is
// normalized to its fully qualified form first, so "example.com" matches
// the zone stored as "example.com.".
func (c *Client) ZoneIDByName(ctx context.Context, name string) (string, error) {
	zones, err := c.ListHostedZones(ctx)
	if err != nil {
		return "", fmt.Errorf("listing hosted zones: %w", err)
	}
	want := dns.Fqdn(name)
	for _, zone := range Seq(Child(Child(zones, "HostedZones"), "HostedZone")) {
		if Text(Child(zone, "Name")) == want {
			return strings.TrimPrefix(Text(Child(zone, "Id")), "/hostedzone/"), nil
		}
	}
	return "", fmt.Errorf("no hosted zone named %q", want)
}

// ChangeResourceRecordSets renders changes and submits them as one atomic
// batch against the zone. Either every change is applied or none are.
func (c *Client) ChangeResourceRecordSets(ctx context.Context, zoneID string, changes []Change) (Value, error) {
	body, err := RenderChangeBatch(c.Config, ChangeResourceRecordSets, changes)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, ChangeResourceRecordSets, map[string]string{
		"zoneId":  zoneID,
		"content": body,
	})
}
