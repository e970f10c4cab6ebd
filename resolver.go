package ddns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
)

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(context.Context) ([]netip.Addr, error)

func (f ResolverFunc) Resolve(ctx context.Context) ([]netip.Addr, error) {
	return f(ctx)
}

// FromString constructs a resolver that always reports the single address
// parsed from addr.
func FromString(addr string) (Resolver, error) {
	if _, err := netip.ParseAddr(addr); err != nil {
		return nil, fmt.Errorf("unable to parse IP %q: %w", addr, err)
	}
	return stringResolver(addr), nil
}

type stringResolver string

func (s stringResolver) Resolve(context.Context) ([]netip.Addr, error) {
	addr, err := netip.ParseAddr(string(s))
	if err != nil {
		return nil, fmt.Errorf("unable to parse IP: %w", err)
	}
	return []netip.Addr{addr}, nil
}

// InterfaceResolver constructs a resolver reporting the addresses of the
// named network interfaces. With no names it reports every non-loopback
// address on the machine.
func InterfaceResolver(iface ...string) Resolver {
	return interfaceResolver{ifaces: iface}
}

type interfaceResolver struct {
	ifaces []string
}

func (r interfaceResolver) Resolve(context.Context) ([]netip.Addr, error) {
	var raw []net.Addr
	var errs []error
	if len(r.ifaces) == 0 {
		adds, err := net.InterfaceAddrs()
		if err != nil {
			return nil, fmt.Errorf("error getting interface addresses: %w", err)
		}
		raw = adds
	}
	for _, name := range r.ifaces {
		iface, err := net.InterfaceByName(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("error getting interface %s by name: %w", name, err))
			continue
		}
		adds, err := iface.Addrs()
		if err != nil {
			errs = append(errs, fmt.Errorf("error looking up addresses for interface %s: %w", name, err))
			continue
		}
		raw = append(raw, adds...)
	}

	var addrs []netip.Addr
	for _, addr := range raw {
		// addr is of the form ip+net:192.168.86.253/24
		prefix, err := netip.ParsePrefix(addr.String())
		if err != nil {
			errs = append(errs, fmt.Errorf("error parsing local ip %s: %w", addr.String(), err))
			continue
		}
		if prefix.Addr().IsLoopback() {
			continue
		}
		addrs = append(addrs, prefix.Addr())
	}
	return addrs, errors.Join(errs...)
}

// Join combines resolvers, concatenating their results in order. Use it to
// pair an IPv4-only and an IPv6-only web resolver.
func Join(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(ctx context.Context) ([]netip.Addr, error) {
		var addrs []netip.Addr
		var errs []error
		for _, r := range resolvers {
			a, err := r.Resolve(ctx)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			addrs = append(addrs, a...)
		}
		if len(addrs) == 0 && len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		return addrs, nil
	})
}
