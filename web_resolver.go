package ddns

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"
)

// DefaultIPServices are the public-IP endpoints WebResolver falls back
// through when the caller supplies none. Run your own service over https
// if you can and pass its URL instead.
var DefaultIPServices = []string{
	"https://checkip.amazonaws.com/",
	"https://icanhazip.com/",
	"https://ipinfo.io/ip",
}

// WebResolver constructs a resolver that asks external web services for
// the caller's public IP address.
//
// Each serviceURL must speak http and return status "200 OK" with a valid
// IPv4 or IPv6 address as the first line of the response body. Services
// are tried in order; the first parseable answer wins, and the resolver
// fails only when every service fails.
func WebResolver(serviceURL ...string) (Resolver, error) {
	if len(serviceURL) == 0 {
		serviceURL = DefaultIPServices
	}
	var urls []*url.URL
	for _, u := range serviceURL {
		pu, err := url.Parse(u)
		if err != nil {
			return nil, fmt.Errorf("error parsing URL: %w", err)
		}
		urls = append(urls, pu)
	}
	return &webResolver{serviceURLs: urls}, nil
}

type webResolver struct {
	httpClient  *http.Client
	serviceURLs []*url.URL
}

func (wr *webResolver) SetHTTPClient(c *http.Client) {
	wr.httpClient = c
}

// Resolve implements ddns.Resolver.
func (wr *webResolver) Resolve(ctx context.Context) ([]netip.Addr, error) {
	var errs []error
	for _, u := range wr.serviceURLs {
		ip, err := wr.lookup(ctx, u)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", u.Host, err))
			continue
		}
		return []netip.Addr{ip}, nil
	}
	return nil, fmt.Errorf("no IP lookup service answered: %w", errors.Join(errs...))
}

func (wr *webResolver) lookup(ctx context.Context, url *url.URL) (netip.Addr, error) {
	// 15 seconds is an eternity for a request this small, but it keeps
	// Resolve from hanging forever when the caller passed context.Background
	// and the default client has no timeout.
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	httpclient := wr.httpClient
	if httpclient == nil {
		httpclient = http.DefaultClient
	}

	resp, err := httpclient.Do(req)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return netip.Addr{}, fmt.Errorf("http request returned %s", resp.Status)
	}

	scanner := bufio.NewReader(resp.Body)
	ipstring, _ := scanner.ReadString('\n')
	ip, err := netip.ParseAddr(strings.TrimSpace(ipstring))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error parsing IP address from response body: %w", err)
	}
	return ip, nil
}
