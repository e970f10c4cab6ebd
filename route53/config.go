package route53

// SignatureMethod selects the HMAC hash used to sign requests.
type SignatureMethod string

const (
	HmacSHA256 SignatureMethod = "HmacSHA256"
	HmacSHA1   SignatureMethod = "HmacSHA1"
)

// Format selects how Decode presents a successful response body.
type Format string

const (
	// FormatValue decodes the XML body into a generic Value tree.
	FormatValue Format = "value"
	// FormatJSON decodes into the Value tree and re-serializes it as JSON text.
	FormatJSON Format = "json"
	// FormatXML returns the raw XML text unmodified.
	FormatXML Format = "xml"
)

const (
	defaultHost       = "amazonaws.com"
	defaultService    = "route53"
	defaultAPIVersion = "2013-04-01"
)

// Config carries everything needed to build and sign a request.
//
// Config is a value type: the With* setters return modified copies, so a
// Config can be shared as long as callers treat it as read-only. It is not
// safe to mutate one Config from multiple goroutines.
type Config struct {
	AccessKey        string
	SecretKey        string
	SignatureMethod  SignatureMethod
	SignatureVersion int
	APIVersion       string
	Service          string
	Host             string
	Format           Format
	Clock            Clock
	// Debug surfaces raw response bodies in RemoteError instead of the
	// extracted envelope message.
	Debug bool
	// Endpoint overrides the composed scheme://service.host base URL.
	// Intended for tests against local servers.
	Endpoint string

	body string
}

// NewConfig returns a Config with the given credentials and the defaults
// for the Route 53 endpoint: HmacSHA256, signature version 3, API version
// 2013-04-01, structured (value) response format, system clock.
func NewConfig(accessKey, secretKey string) Config {
	return Config{
		AccessKey:        accessKey,
		SecretKey:        secretKey,
		SignatureMethod:  HmacSHA256,
		SignatureVersion: 3,
		APIVersion:       defaultAPIVersion,
		Service:          defaultService,
		Host:             defaultHost,
		Format:           FormatValue,
		Clock:            SystemClock{},
	}
}

// WithFormat returns a copy of c with the response format replaced.
func (c Config) WithFormat(f Format) Config {
	c.Format = f
	return c
}

// WithSignatureMethod returns a copy of c signing with m.
func (c Config) WithSignatureMethod(m SignatureMethod) Config {
	c.SignatureMethod = m
	return c
}

// WithClock returns a copy of c reading timestamps from clock.
func (c Config) WithClock(clock Clock) Config {
	c.Clock = clock
	return c
}

// WithBody returns a copy of c with body staged as the request payload.
// Build uses the staged body when the call supplies no "content" parameter.
func (c Config) WithBody(body string) Config {
	c.body = body
	return c
}

// WithEndpoint returns a copy of c that sends requests to base instead of
// the composed https://<service>.<host> URL.
func (c Config) WithEndpoint(base string) Config {
	c.Endpoint = base
	return c
}

// WithDebug returns a copy of c with debug response reporting set to on.
func (c Config) WithDebug(on bool) Config {
	c.Debug = on
	return c
}

func (c Config) validate() error {
	if c.AccessKey == "" || c.SecretKey == "" {
		return &ConfigurationError{Reason: "missing access key or secret key"}
	}
	switch c.Format {
	case FormatValue, FormatJSON, FormatXML:
	default:
		return &ConfigurationError{Reason: "unknown response format " + string(c.Format)}
	}
	switch c.SignatureMethod {
	case HmacSHA256, HmacSHA1:
	default:
		return &ConfigurationError{Reason: "unknown signature method " + string(c.SignatureMethod)}
	}
	return nil
}
