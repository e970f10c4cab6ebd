package route53

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// errorEnvelope matches the <ErrorResponse> document the endpoint wraps
// failures in.
type errorEnvelope struct {
	Error struct {
		Type    string `xml:"Type"`
		Code    string `xml:"Code"`
		Message string `xml:"Message"`
	} `xml:"Error"`
}

// Decode validates resp and decodes its body according to cfg.Format.
//
// On success the result is a Value tree (FormatValue), a JSON string
// (FormatJSON), or the raw XML text (FormatXML). A non-2xx status yields a
// *RemoteError carrying the envelope's Message, or the body verbatim when
// no message is present or cfg.Debug is set.
func Decode(resp *http.Response, cfg Config) (any, error) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(raw, cfg.Debug),
		}
	}

	switch cfg.Format {
	case FormatXML:
		return string(raw), nil
	case FormatJSON:
		if len(raw) == 0 {
			return "{}", nil
		}
		v, err := parseDocument(strings.NewReader(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("decoding response XML: %w", err)
		}
		text, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("re-encoding response as JSON: %w", err)
		}
		return string(text), nil
	default:
		if len(raw) == 0 {
			return Scalar(""), nil
		}
		v, err := parseDocument(strings.NewReader(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("decoding response XML: %w", err)
		}
		return v, nil
	}
}

func remoteMessage(raw []byte, debug bool) string {
	if debug {
		return string(raw)
	}
	var env errorEnvelope
	if err := xml.Unmarshal(raw, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return string(raw)
}
