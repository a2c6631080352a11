package memory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// reservedTTLKey is the wire name of the expiry override entry. It is written
// first so payloads stay byte-compatible with earlier deployments of this
// store, and it is stripped into handle metadata on decode so it never shows
// up in field iteration.
const reservedTTLKey = "__ttl"

// encodeFields serializes the visible fields as a JSON object in insertion
// order, prepending the reserved expiry entry when an override is set.
func encodeFields(fields *orderedmap.OrderedMap[string, any], ttl time.Duration) ([]byte, error) {
	out := orderedmap.New[string, any]()
	if ttl > 0 {
		out.Set(reservedTTLKey, int64(ttl/time.Second))
	}
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return json.Marshal(out)
}

// decodeFields parses a stored payload back into an ordered field map and the
// expiry override carried in the reserved entry (zero when absent).
func decodeFields(data []byte) (*orderedmap.OrderedMap[string, any], time.Duration, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, 0, errors.New("payload is not a JSON object")
	}

	fields := orderedmap.New[string, any]()
	if err := json.Unmarshal(data, fields); err != nil {
		return nil, 0, err
	}

	var ttl time.Duration
	if raw, ok := fields.Get(reservedTTLKey); ok {
		seconds, err := reservedTTLSeconds(raw)
		if err != nil {
			return nil, 0, err
		}
		fields.Delete(reservedTTLKey)
		ttl = time.Duration(seconds) * time.Second
	}

	return fields, ttl, nil
}

// maxReservedTTLSeconds is the largest expiry the handle can represent: the
// wire value is carried as a time.Duration, which caps out around 292 years.
const maxReservedTTLSeconds = math.MaxInt64 / int64(time.Second)

// reservedTTLSeconds validates the reserved expiry entry. The wire contract
// requires a non-negative integral number of seconds; any magnitude a legacy
// payload could carry is accepted up to the Duration ceiling.
func reservedTTLSeconds(raw any) (int64, error) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid %s entry: %v", reservedTTLKey, err)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("invalid %s entry: expected number, got %T", reservedTTLKey, raw)
	}

	if f < 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid %s entry: %v is not a non-negative integer", reservedTTLKey, f)
	}
	if f > float64(maxReservedTTLSeconds) {
		return 0, fmt.Errorf("invalid %s entry: %v exceeds the representable expiry", reservedTTLKey, f)
	}
	return int64(f), nil
}

// normalizeTTL quantizes expiry overrides to whole seconds, rounding up, so
// the in-memory value always matches what the wire format can carry.
// Non-positive inputs clear the override.
func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	if rem := d % time.Second; rem != 0 {
		d += time.Second - rem
	}
	return d
}
