/*
Package route53 is a minimal client for the Route 53 legacy XML API:
hosted-zone listing, record-set changes, health checks.

Requests are authenticated by an HMAC over the Date header string alone,
carried in the X-Amzn-Authorization header. The scheme does not bind the
signature to the method, path or body; that is how the legacy endpoint
works and the package preserves it for wire compatibility. The practical
consequence is that a captured request is replayable within the server's
clock-skew window, so treat transport security (https) as mandatory.
*/
package route53
