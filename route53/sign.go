package route53

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"hash"
	"net/http"
)

// The endpoint authenticates requests by recomputing an HMAC over the Date
// header string alone. Method, path and body are not covered; that is the
// wire protocol, not an oversight here (see the package doc).

// timestamp formats t in the RFC 1123 GMT form the Date header and the
// signature share. Both must match byte for byte or the endpoint rejects
// the request.
func timestamp(c Clock) (string, error) {
	if c == nil {
		c = SystemClock{}
	}
	t, err := c.Now()
	if err != nil {
		return "", err
	}
	return t.UTC().Format(http.TimeFormat), nil
}

// sign returns the base64 HMAC of the timestamp string keyed by the secret.
func sign(secretKey, ts string, method SignatureMethod) string {
	var h func() hash.Hash
	switch method {
	case HmacSHA1:
		h = sha1.New
	default:
		h = sha256.New
	}
	mac := hmac.New(h, []byte(secretKey))
	mac.Write([]byte(ts))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// authorization renders the authorization header value for a timestamp.
func authorization(cfg Config, ts string) string {
	return fmt.Sprintf("AWSAccessKeyId=%s,Algorithm=%s,Signature=%s",
		cfg.AccessKey, cfg.SignatureMethod, sign(cfg.SecretKey, ts, cfg.SignatureMethod))
}
