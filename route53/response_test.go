package route53

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

const zonesFixture = `<?xml version="1.0" encoding="UTF-8"?>
<ListHostedZonesResponse xmlns="https://route53.amazonaws.com/doc/2013-04-01/">
  <HostedZones>
    <HostedZone>
      <Id>/hostedzone/Z123</Id>
      <Name>example.com.</Name>
      <ResourceRecordSetCount>4</ResourceRecordSetCount>
    </HostedZone>
    <HostedZone>
      <Id>/hostedzone/Z999</Id>
      <Name>example.org.</Name>
      <ResourceRecordSetCount>2</ResourceRecordSetCount>
    </HostedZone>
  </HostedZones>
  <IsTruncated>false</IsTruncated>
</ListHostedZonesResponse>`

const errorFixture = `<?xml version="1.0" encoding="UTF-8"?>
<ErrorResponse xmlns="https://route53.amazonaws.com/doc/2013-04-01/">
  <Error>
    <Type>Sender</Type>
    <Code>InvalidInput</Code>
    <Message>Invalid request</Message>
  </Error>
  <RequestId>abc-123</RequestId>
</ErrorResponse>`

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDecodeValue(t *testing.T) {
	v, err := Decode(response(200, zonesFixture), testConfig())
	if err != nil {
		t.Fatalf("Decode failed: %s", err)
	}
	zones := Seq(Child(Child(v.(Value), "HostedZones"), "HostedZone"))
	if len(zones) != 2 {
		t.Fatalf("Expected 2 zones; got %d", len(zones))
	}
	if expected, got := "example.com.", Text(Child(zones[0], "Name")); expected != got {
		t.Fatalf("Expected %q; got %q", expected, got)
	}
	if expected, got := "/hostedzone/Z999", Text(Child(zones[1], "Id")); expected != got {
		t.Fatalf("Expected %q; got %q", expected, got)
	}
	if expected, got := "false", Text(Child(v.(Value), "IsTruncated")); expected != got {
		t.Fatalf("Expected %q; got %q", expected, got)
	}
}

// A single repeatable element decodes as a lone mapping; Seq normalizes it.
func TestDecodeSingleElementSeq(t *testing.T) {
	const fixture = `<Resp><HostedZones><HostedZone><Id>/hostedzone/Z1</Id></HostedZone></HostedZones></Resp>`
	v, err := Decode(response(200, fixture), testConfig())
	if err != nil {
		t.Fatalf("Decode failed: %s", err)
	}
	zones := Seq(Child(Child(v.(Value), "HostedZones"), "HostedZone"))
	if len(zones) != 1 {
		t.Fatalf("Expected 1 zone; got %d", len(zones))
	}
	if expected, got := "/hostedzone/Z1", Text(Child(zones[0], "Id")); expected != got {
		t.Fatalf("Expected %q; got %q", expected, got)
	}
}

func TestDecodeJSONEquivalence(t *testing.T) {
	out, err := Decode(response(200, zonesFixture), testConfig().WithFormat(FormatJSON))
	if err != nil {
		t.Fatalf("Decode failed: %s", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out.(string)), &decoded); err != nil {
		t.Fatalf("JSON output does not parse: %s", err)
	}
	expected := map[string]any{
		"HostedZones": map[string]any{
			"HostedZone": []any{
				map[string]any{"Id": "/hostedzone/Z123", "Name": "example.com.", "ResourceRecordSetCount": "4"},
				map[string]any{"Id": "/hostedzone/Z999", "Name": "example.org.", "ResourceRecordSetCount": "2"},
			},
		},
		"IsTruncated": "false",
	}
	if !reflect.DeepEqual(expected, decoded) {
		t.Fatalf("Expected %#v; got %#v", expected, decoded)
	}
}

func TestDecodeRawXML(t *testing.T) {
	out, err := Decode(response(200, zonesFixture), testConfig().WithFormat(FormatXML))
	if err != nil {
		t.Fatalf("Decode failed: %s", err)
	}
	if out.(string) != zonesFixture {
		t.Fatal("Expected raw XML body unmodified")
	}
}

func TestDecodeRemoteError(t *testing.T) {
	_, err := Decode(response(400, errorFixture), testConfig())
	var rerr *RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RemoteError; got %v", err)
	}
	if expected, got := "Invalid request", rerr.Message; expected != got {
		t.Fatalf("Expected message %q; got %q", expected, got)
	}
	if rerr.StatusCode != 400 {
		t.Fatalf("Expected status 400; got %d", rerr.StatusCode)
	}
}

func TestDecodeRemoteErrorDebug(t *testing.T) {
	_, err := Decode(response(400, errorFixture), testConfig().WithDebug(true))
	var rerr *RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RemoteError; got %v", err)
	}
	if rerr.Message != errorFixture {
		t.Fatalf("Expected raw body in debug mode; got %q", rerr.Message)
	}
}

func TestDecodeRemoteErrorNoEnvelope(t *testing.T) {
	_, err := Decode(response(500, "gateway exploded"), testConfig())
	var rerr *RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RemoteError; got %v", err)
	}
	if expected, got := "gateway exploded", rerr.Message; expected != got {
		t.Fatalf("Expected %q; got %q", expected, got)
	}
}
