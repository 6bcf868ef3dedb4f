package id

import (
	"bytes"
	"crypto/sha256"
	"time"

	"github.com/oklog/ulid/v2"
)

// Derive returns a ULID stamped with t whose entropy is taken from a hash
// of key. The same (t, key) always gives the same id, so journal writes
// can replace earlier copies of a trade. A zero t (undated trade) stamps
// the Unix epoch.
func Derive(t time.Time, key string) string {
	if t.IsZero() || t.Before(time.Unix(0, 0)) {
		t = time.Unix(0, 0)
	}

	sum := sha256.Sum256([]byte(key))
	id, err := ulid.New(ulid.Timestamp(t.UTC()), bytes.NewReader(sum[:]))
	if err != nil {
		// only when t is beyond the ULID time range
		panic(err)
	}
	return id.String()
}

// Time extracts the timestamp embedded in a ULID string.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
