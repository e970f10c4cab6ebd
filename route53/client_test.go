package route53_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stsap/route53ddns/route53"
)

const zonesBody = `<?xml version="1.0" encoding="UTF-8"?>
<ListHostedZonesResponse xmlns="https://route53.amazonaws.com/doc/2013-04-01/">
  <HostedZones>
    <HostedZone>
      <Id>/hostedzone/Z123</Id>
      <Name>example.com.</Name>
    </HostedZone>
  </HostedZones>
</ListHostedZonesResponse>`

func testClient(srv *httptest.Server) *route53.Client {
	cfg := route53.NewConfig("AKIAEXAMPLE", "notasecret").WithEndpoint(srv.URL)
	c := route53.New(cfg)
	c.HTTPClient = srv.Client()
	return c
}

// A lookup for the zone name without its trailing dot must match the zone
// stored fully qualified and come back as the bare id.
func TestZoneIDByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2013-04-01/hostedzone" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("X-Amzn-Authorization") == "" {
			t.Error("request was not signed")
		}
		if r.Header.Get("Date") == "" {
			t.Error("request has no date header")
		}
		io.WriteString(w, zonesBody)
	}))
	defer srv.Close()

	id, err := testClient(srv).ZoneIDByName(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("ZoneIDByName failed: %s", err)
	}
	if expected, got := "Z123", id; expected != got {
		t.Fatalf("Expected zone id %q; got %q", expected, got)
	}
}

func TestZoneIDByNameNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, zonesBody)
	}))
	defer srv.Close()

	_, err := testClient(srv).ZoneIDByName(context.Background(), "missing.net")
	if err == nil {
		t.Fatal("Expected an error for an unknown zone; got err == nil")
	}
}

func TestChangeResourceRecordSets(t *testing.T) {
	var captured string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST; got %s", r.Method)
		}
		if r.URL.Path != "/2013-04-01/hostedzone/Z123/rrset" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		captured = string(body)
		io.WriteString(w, `<ChangeResourceRecordSetsResponse><ChangeInfo><Id>/change/C42</Id><Status>PENDING</Status></ChangeInfo></ChangeResourceRecordSetsResponse>`)
	}))
	defer srv.Close()

	resp, err := testClient(srv).ChangeResourceRecordSets(context.Background(), "Z123", []route53.Change{{
		Action: route53.ChangeUpsert,
		Name:   "host.example.com.",
		Type:   "A",
		TTL:    300,
		Values: []string{"203.0.113.9"},
	}})
	if err != nil {
		t.Fatalf("ChangeResourceRecordSets failed: %s", err)
	}
	if !strings.Contains(captured, "<Value>203.0.113.9</Value>") {
		t.Fatalf("Submitted batch missing value: %s", captured)
	}
	if !strings.Contains(captured, "<Action>UPSERT</Action>") {
		t.Fatalf("Submitted batch missing action: %s", captured)
	}
	info := route53.Child(resp, "ChangeInfo")
	if expected, got := "PENDING", route53.Text(route53.Child(info, "Status")); expected != got {
		t.Fatalf("Expected status %q; got %q", expected, got)
	}
}

func TestDoRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		io.WriteString(w, `<ErrorResponse><Error><Message>Invalid request</Message></Error></ErrorResponse>`)
	}))
	defer srv.Close()

	_, err := testClient(srv).ListHostedZones(context.Background())
	var rerr *route53.RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RemoteError; got %v", err)
	}
	if expected, got := "Invalid request", rerr.Message; expected != got {
		t.Fatalf("Expected %q; got %q", expected, got)
	}
}

func TestDoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := testClient(srv).ListHostedZones(context.Background())
	var terr *route53.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError; got %v", err)
	}
}
