package ddns

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/netip"

	"github.com/miekg/dns"

	"github.com/stsap/route53ddns/route53"
)

// NewRoute53 returns a Provider that manages records through client.
func NewRoute53(client *route53.Client) *Route53Provider {
	return &Route53Provider{
		client: client,
		TTL:    300,
		logger: discard,
	}
}

// Route53Provider implements ddns.Provider on top of the route53 client.
//
// All hosts go into a single change batch, so a multi-host update either
// lands completely or not at all.
type Route53Provider struct {
	client *route53.Client
	TTL    int
	logger *log.Logger
}

func (p *Route53Provider) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = discard
	}
	p.logger = logger
}

func (p *Route53Provider) SetHTTPClient(c *http.Client) {
	p.client.HTTPClient = c
}

func (p *Route53Provider) SetDNSRecords(ctx context.Context, zone string, hosts []string, addrs []netip.Addr) error {
	if p.client == nil {
		return errors.New("ddns.Route53Provider: construct with ddns.NewRoute53")
	}
	var v4, v6 []string
	for _, a := range addrs {
		if a.Is4() {
			v4 = append(v4, a.String())
		} else {
			v6 = append(v6, a.String())
		}
	}
	if len(v4) == 0 && len(v6) == 0 {
		return errors.New("no addresses to publish")
	}

	zoneID, err := p.client.ZoneIDByName(ctx, zone)
	if err != nil {
		return fmt.Errorf("unable to get zone ID for %s: %w", zone, err)
	}
	p.logger.Printf("got zone ID: %s\n", zoneID)

	var changes []route53.Change
	for _, host := range hosts {
		name := dns.Fqdn(host)
		if len(v4) > 0 {
			changes = append(changes, route53.Change{
				Action: route53.ChangeUpsert,
				Name:   name,
				Type:   "A",
				TTL:    p.TTL,
				Values: v4,
			})
		}
		if len(v6) > 0 {
			changes = append(changes, route53.Change{
				Action: route53.ChangeUpsert,
				Name:   name,
				Type:   "AAAA",
				TTL:    p.TTL,
				Values: v6,
			})
		}
	}

	p.logger.Printf("submitting %d changes to zone %s...\n", len(changes), zoneID)
	resp, err := p.client.ChangeResourceRecordSets(ctx, zoneID, changes)
	if err != nil {
		return fmt.Errorf("error submitting change batch: %w", err)
	}
	info := route53.Child(resp, "ChangeInfo")
	p.logger.Printf("change %s is %s\n",
		route53.Text(route53.Child(info, "Id")),
		route53.Text(route53.Child(info, "Status")))
	return nil
}
