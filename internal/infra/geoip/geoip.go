// Package geoip annotates request logs with the caller's country using a
// MaxMind GeoIP2 database. The database is optional; without one every
// lookup reports an empty country.
package geoip

import (
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// DB wraps a GeoIP2 country database. A nil *DB is valid and resolves
// nothing, which keeps the wiring unconditional at startup.
type DB struct {
	reader *geoip2.Reader
}

// Open loads the database at path. An empty path yields a nil DB and no
// error, since the country annotation is a best-effort feature.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &DB{reader: reader}, nil
}

// Country returns the ISO 3166-1 code for ip, or "" when unknown.
func (d *DB) Country(ip string) (string, error) {
	if d == nil || d.reader == nil {
		return "", nil
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := d.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup: %w", err)
	}
	if record == nil {
		return "", nil
	}
	return record.Country.IsoCode, nil
}

// Lookup adapts the database to the middleware's country lookup contract.
func (d *DB) Lookup() func(ip string) (string, error) {
	return d.Country
}

func (d *DB) Close() error {
	if d == nil || d.reader == nil {
		return nil
	}
	return d.reader.Close()
}
