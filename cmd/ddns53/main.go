package main

import (
	"context"
	"fmt"
	"log"
	"net/netip"
	"os"
	"syscall"

	"github.com/fatih/color"
	"github.com/likexian/doh"
	dohdns "github.com/likexian/doh/dns"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	ddns "github.com/stsap/route53ddns"
	"github.com/stsap/route53ddns/route53"
)

var logger = log.New(os.Stderr, "", log.LstdFlags)

func main() {
	app := &cli.App{
		Name:  "ddns53",
		Usage: "dynamic DNS updater for Route 53 hosted zones",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "access-key",
				Usage:   "API access key",
				EnvVars: []string{"AWS_ACCESS_KEY_ID", "ROUTE53_ACCESS_KEY"},
			},
			&cli.StringFlag{
				Name:    "secret-key",
				Usage:   "API secret key (prompted for when omitted)",
				EnvVars: []string{"AWS_SECRET_ACCESS_KEY", "ROUTE53_SECRET_KEY"},
			},
			&cli.StringFlag{
				Name:  "zone",
				Usage: "hosted zone name, e.g. example.com",
			},
			&cli.StringFlag{
				Name:  "ntp",
				Usage: "NTP server to read request timestamps from instead of the local clock",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log progress to stderr",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "surface raw API response bodies in error messages",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "update",
				Aliases:   []string{"u", "up"},
				Usage:     "Resolve the public IP and upsert an A record for each host.",
				ArgsUsage: "host [host...]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "ttl", Value: 300, Usage: "record TTL in seconds"},
					&cli.StringFlag{Name: "ip", Usage: "publish this address instead of resolving one"},
					&cli.StringSliceFlag{Name: "from", Usage: "public-IP service URL (repeatable)"},
					&cli.BoolFlag{Name: "check", Usage: "look the records up over DoH afterwards"},
				},
				Action: runUpdate,
			},
			{
				Name:    "zones",
				Aliases: []string{"z"},
				Usage:   "List the hosted zones visible to these credentials.",
				Action:  runZones,
			},
			{
				Name:    "records",
				Aliases: []string{"r", "rr"},
				Usage:   "List the record sets of the configured zone.",
				Action:  runRecords,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("ddns53: %s", err))
		os.Exit(1)
	}
}

func clientConfig(cctx *cli.Context) (route53.Config, error) {
	accessKey := cctx.String("access-key")
	secretKey := cctx.String("secret-key")
	if accessKey == "" {
		return route53.Config{}, fmt.Errorf("no access key: set --access-key or AWS_ACCESS_KEY_ID")
	}
	if secretKey == "" && term.IsTerminal(int(syscall.Stdin)) {
		fmt.Print("Enter secret key: ")
		b, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return route53.Config{}, fmt.Errorf("error reading secret key from stdin: %w", err)
		}
		secretKey = string(b)
	}
	if secretKey == "" {
		return route53.Config{}, fmt.Errorf("no secret key: set --secret-key or AWS_SECRET_ACCESS_KEY")
	}

	cfg := route53.NewConfig(accessKey, secretKey)
	if host := cctx.String("ntp"); host != "" {
		cfg = cfg.WithClock(route53.NTPClock{Host: host})
	}
	if cctx.Bool("debug") {
		cfg = cfg.WithDebug(true)
	}
	return cfg, nil
}

func verbose(cctx *cli.Context) *log.Logger {
	if cctx.Bool("verbose") {
		return logger
	}
	return nil
}

func zoneName(cctx *cli.Context) (string, error) {
	zone := cctx.String("zone")
	if zone == "" {
		return "", fmt.Errorf("no zone name: set --zone")
	}
	return zone, nil
}

func runUpdate(cctx *cli.Context) error {
	zone, err := zoneName(cctx)
	if err != nil {
		return err
	}
	hosts := cctx.Args().Slice()
	if len(hosts) == 0 {
		return fmt.Errorf("no hosts given: ddns53 update host [host...]")
	}
	cfg, err := clientConfig(cctx)
	if err != nil {
		return err
	}

	var resolver ddns.Resolver
	if ip := cctx.String("ip"); ip != "" {
		resolver, err = ddns.FromString(ip)
	} else {
		resolver, err = ddns.WebResolver(cctx.StringSlice("from")...)
	}
	if err != nil {
		return err
	}
	addrs, err := resolver.Resolve(cctx.Context)
	if err != nil {
		return fmt.Errorf("resolving public IP: %w", err)
	}

	client, err := ddns.New(zone, hosts,
		ddns.UsingRoute53Config(cfg),
		ddns.UsingResolver(ddns.ResolverFunc(func(context.Context) ([]netip.Addr, error) { return addrs, nil })),
		ddns.WithTTL(cctx.Int("ttl")),
		ddns.WithLogger(verbose(cctx)),
	)
	if err != nil {
		return err
	}
	if err := client.RunDDNS(cctx.Context); err != nil {
		return err
	}
	fmt.Println(color.GreenString("updated %d host(s) in %s to %v", len(hosts), zone, addrs))

	if cctx.Bool("check") {
		checkRecords(cctx, hosts, addrs)
	}
	return nil
}

func checkRecords(cctx *cli.Context, hosts []string, addrs []netip.Addr) {
	published := map[string]bool{}
	for _, a := range addrs {
		published[a.String()] = true
	}
	c := doh.Use(doh.CloudflareProvider)
	for _, host := range hosts {
		resp, err := c.Query(cctx.Context, dohdns.Domain(host), dohdns.TypeA)
		if err != nil {
			fmt.Println(color.YellowString("check %s: DoH query failed: %s", host, err))
			continue
		}
		found := false
		for _, a := range resp.Answer {
			if a.Type == 1 && published[a.Data] { // 1 -- A
				found = true
			}
		}
		if found {
			fmt.Println(color.GreenString("check %s: record visible over DoH", host))
		} else {
			// resolvers cache; absence right after an update is expected
			fmt.Println(color.YellowString("check %s: updated record not visible yet", host))
		}
	}
}

func runZones(cctx *cli.Context) error {
	cfg, err := clientConfig(cctx)
	if err != nil {
		return err
	}
	zones, err := route53.New(cfg).ListHostedZones(cctx.Context)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "ID", "Records"})
	table.SetAutoWrapText(false)
	for _, zone := range route53.Seq(route53.Child(route53.Child(zones, "HostedZones"), "HostedZone")) {
		table.Append([]string{
			route53.Text(route53.Child(zone, "Name")),
			route53.Text(route53.Child(zone, "Id")),
			route53.Text(route53.Child(zone, "ResourceRecordSetCount")),
		})
	}
	table.Render()
	return nil
}

func runRecords(cctx *cli.Context) error {
	zone, err := zoneName(cctx)
	if err != nil {
		return err
	}
	cfg, err := clientConfig(cctx)
	if err != nil {
		return err
	}
	client := route53.New(cfg)
	zoneID, err := client.ZoneIDByName(cctx.Context, zone)
	if err != nil {
		return err
	}
	sets, err := client.ListResourceRecordSets(cctx.Context, zoneID)
	if err != nil {
		return err
	}

	fmt.Printf("Records in %s\n", zone)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Value", "Type", "TTL"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})
	table.SetAutoWrapText(false)
	for _, set := range route53.Seq(route53.Child(route53.Child(sets, "ResourceRecordSets"), "ResourceRecordSet")) {
		values := route53.Seq(route53.Child(route53.Child(set, "ResourceRecords"), "ResourceRecord"))
		first := ""
		if len(values) > 0 {
			first = route53.Text(route53.Child(values[0], "Value"))
		}
		table.Append([]string{
			route53.Text(route53.Child(set, "Name")),
			first,
			route53.Text(route53.Child(set, "Type")),
			route53.Text(route53.Child(set, "TTL")),
		})
		if len(values) > 1 {
			for _, v := range values[1:] {
				table.Append([]string{"", route53.Text(route53.Child(v, "Value")), "", ""})
			}
		}
	}
	table.Render()
	return nil
}
