package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"time"
)

// dateLayouts are tried in order when decoding a date string.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an RFC 3339 timestamp or a bare YYYY-MM-DD date.
// Dates without a zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("chart: cannot parse date %q", s)
}

// DataPoint is one dated sample of named metric fields.
type DataPoint struct {
	Date   time.Time
	Fields map[string]float64
}

// Value returns the value of field and whether it is present and finite.
func (p DataPoint) Value(field string) (float64, bool) {
	v, ok := p.Fields[field]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// UnmarshalJSON decodes {"date": "...", "<field>": <number>, ...}.
// Every numeric member other than date becomes a field; null and
// non-numeric members are left out so they read as missing.
func (p *DataPoint) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rawDate, ok := raw["date"]
	if !ok {
		return &MalformedRecordError{Field: "date"}
	}
	date, err := decodeDate(rawDate)
	if err != nil {
		return err
	}

	fields := make(map[string]float64, len(raw)-1)
	for k, v := range raw {
		if k == "date" {
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err != nil || bytes.Equal(v, []byte("null")) {
			continue
		}
		fields[k] = f
	}

	p.Date = date
	p.Fields = fields
	return nil
}

// MarshalJSON encodes the point in the form UnmarshalJSON reads.
func (p DataPoint) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Fields)+1)
	for k, v := range p.Fields {
		m[k] = v
	}
	m["date"] = p.Date.UTC().Format(time.RFC3339)
	return json.Marshal(m)
}

// ChannelSeries is the date-ordered series of one release channel.
type ChannelSeries struct {
	Channel string      `json:"channel"`
	Dates   []DataPoint `json:"dates"`
}

// VersionGroup holds the channel series of one version, in fixed channel
// order (nightly first).
type VersionGroup struct {
	Version  string          `json:"version"`
	Channels []ChannelSeries `json:"channels"`
}

// UnmarshalJSON accepts the version as a string or a number.
func (g *VersionGroup) UnmarshalJSON(data []byte) error {
	var raw struct {
		Version  json.RawMessage `json:"version"`
		Channels []ChannelSeries `json:"channels"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var version string
	if len(raw.Version) > 0 && raw.Version[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(raw.Version, &n); err != nil {
			return fmt.Errorf("chart: version: %w", err)
		}
		version = n.String()
	} else if len(raw.Version) > 0 {
		if err := json.Unmarshal(raw.Version, &version); err != nil {
			return fmt.Errorf("chart: version: %w", err)
		}
	}

	g.Version = version
	g.Channels = raw.Channels
	return nil
}

// BurnupPoint is the cumulative opened and closed count at one date.
// Closed <= Opened is expected but not enforced.
type BurnupPoint struct {
	Date   time.Time
	Opened float64
	Closed float64
}

// Open returns the number of items still open.
func (p BurnupPoint) Open() float64 {
	return p.Opened - p.Closed
}

// UnmarshalJSON decodes {"date": "...", "opened": n, "closed": n}.
// A missing or null count is a malformed record.
func (p *BurnupPoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date   json.RawMessage `json:"date"`
		Opened *float64        `json:"opened"`
		Closed *float64        `json:"closed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Date) == 0 {
		return &MalformedRecordError{Field: "date"}
	}
	date, err := decodeDate(raw.Date)
	if err != nil {
		return err
	}
	if raw.Opened == nil {
		return &MalformedRecordError{Field: "opened"}
	}
	if raw.Closed == nil {
		return &MalformedRecordError{Field: "closed"}
	}
	*p = BurnupPoint{Date: date, Opened: *raw.Opened, Closed: *raw.Closed}
	return nil
}

// MarshalJSON encodes the point in the form UnmarshalJSON reads.
func (p BurnupPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date   string  `json:"date"`
		Opened float64 `json:"opened"`
		Closed float64 `json:"closed"`
	}{p.Date.UTC().Format(time.RFC3339), p.Opened, p.Closed})
}

// decodeDate reads a JSON date string or a Unix millisecond number.
func decodeDate(raw json.RawMessage) (time.Time, error) {
	if bytes.Equal(raw, []byte("null")) {
		return time.Time{}, &MalformedRecordError{Field: "date"}
	}
	if len(raw) > 0 && raw[0] != '"' {
		ms, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("chart: date: %w", err)
		}
		return time.UnixMilli(ms).UTC(), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}
	return ParseDate(s)
}

// FieldNames returns the sorted field names present in any point of groups.
func FieldNames(groups []VersionGroup) []string {
	seen := make(map[string]struct{})
	for _, g := range groups {
		for _, ch := range g.Channels {
			for _, p := range ch.Dates {
				for k := range p.Fields {
					seen[k] = struct{}{}
				}
			}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
