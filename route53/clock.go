package route53

import (
	"fmt"
	"time"

	"github.com/beevik/ntp"
)

// Clock supplies the wall-clock reading that request signatures are
// computed over. The signature is valid only while the remote end accepts
// the timestamp, so a host with a skewed local clock can substitute a
// network time source.
type Clock interface {
	Now() (time.Time, error)
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() (time.Time, error) {
	return time.Now(), nil
}

// NTPClock queries an NTP server and reports the transmit timestamp of the
// response packet.
type NTPClock struct {
	Host string
}

func (c NTPClock) Now() (time.Time, error) {
	resp, err := ntp.Query(c.Host)
	if err != nil {
		return time.Time{}, fmt.Errorf("querying ntp server %s: %w", c.Host, err)
	}
	if err := resp.Validate(); err != nil {
		return time.Time{}, fmt.Errorf("invalid ntp response from %s: %w", c.Host, err)
	}
	return resp.Time, nil
}
