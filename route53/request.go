package route53

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`__[A-Za-z]+__`)

// Build produces the fully formed, signed HTTP request for one action.
//
// Validation happens before anything touches the network: credentials and
// response format come from cfg, the action must be known, and every
// parameter the action's descriptor names must be present and non-empty.
// The "content" parameter is the request body; when absent, a body staged
// on cfg with [Config.WithBody] is used instead.
func Build(ctx context.Context, cfg Config, action Action, params map[string]string) (*http.Request, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	desc, ok := descriptors[action]
	if !ok {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown action %d", int(action))}
	}

	body := params["content"]
	if body == "" {
		body = cfg.body
	}
	for _, name := range desc.required {
		if name == "content" {
			if body == "" {
				return nil, &ValidationError{Reason: action.String() + " requires a request body"}
			}
			continue
		}
		if params[name] == "" {
			return nil, &ValidationError{Reason: action.String() + " requires parameter " + name}
		}
	}

	path := desc.path
	for name, value := range params {
		path = strings.ReplaceAll(path, "__"+name+"__", value)
	}
	if tok := placeholderPattern.FindString(path); tok != "" {
		return nil, &ValidationError{Reason: "unresolved placeholder " + tok + " in path " + desc.path}
	}

	base := cfg.Endpoint
	if base == "" {
		base = "https://" + cfg.Service + "." + cfg.Host
	}
	url := base + "/" + cfg.APIVersion + "/" + path

	ts, err := timestamp(cfg.Clock)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var payload io.Reader
	if body != "" {
		payload = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, desc.method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", action, err)
	}
	// The signature is computed over ts; the Date header must carry the
	// identical bytes or the remote check fails.
	req.Header.Set("Date", ts)
	req.Header.Set("X-Amzn-Authorization", authorization(cfg, ts))
	if body != "" {
		req.Header.Set("Content-Type", "text/xml")
	}
	return req, nil
}
