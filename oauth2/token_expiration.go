package oauth2

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiration is a token lifetime in whole seconds, as carried by expires_in.
// The zero value is a zero-second lifetime.
type TokenExpiration struct {
	seconds int64
}

var (
	OneHour = Hours(1)
	OneDay  = Days(1)
)

// Seconds is a lifetime of n seconds. Every other constructor normalizes to seconds.
func Seconds(n int64) TokenExpiration {
	return TokenExpiration{seconds: n}
}

// Minutes is n*60 seconds.
func Minutes(n int64) TokenExpiration {
	return Seconds(n * 60)
}

// Hours is n*3600 seconds.
func Hours(n int64) TokenExpiration {
	return Minutes(n * 60)
}

// Days is n*86400 seconds.
func Days(n int64) TokenExpiration {
	return Hours(n * 24)
}

// Until is the lifetime left between now and deadline, truncated to whole seconds.
// It is negative when deadline has passed.
func Until(deadline, now time.Time) TokenExpiration {
	return Seconds(int64(deadline.Sub(now) / time.Second))
}

// ExpirationFromNumericDate is the lifetime left until a JWT time claim such as exp.
func ExpirationFromNumericDate(date *jwt.NumericDate, now time.Time) TokenExpiration {
	if date == nil {
		return TokenExpiration{}
	}
	return Until(date.Time, now)
}

func (e TokenExpiration) InSeconds() int64 {
	return e.seconds
}

func (e TokenExpiration) AsDuration() time.Duration {
	return time.Duration(e.seconds) * time.Second
}

func (e TokenExpiration) Compare(other TokenExpiration) int {
	return cmp.Compare(e.seconds, other.seconds)
}

func (e TokenExpiration) Equal(other TokenExpiration) bool {
	return e.seconds == other.seconds
}

func (e TokenExpiration) Less(other TokenExpiration) bool {
	return e.seconds < other.seconds
}

func (e TokenExpiration) String() string {
	return e.AsDuration().String()
}

// Direction selects which side of a reference instant a lifetime is projected to.
type Direction int

const (
	Future Direction = iota
	Past
)

// ProjectedInstant is now shifted by the lifetime, forwards or backwards.
func (e TokenExpiration) ProjectedInstant(direction Direction, now time.Time) time.Time {
	if direction == Past {
		return now.Add(-e.AsDuration())
	}
	return now.Add(e.AsDuration())
}

// NumericDate projects the lifetime from now into a JWT time claim.
func (e TokenExpiration) NumericDate(direction Direction, now time.Time) *jwt.NumericDate {
	return jwt.NewNumericDate(e.ProjectedInstant(direction, now))
}

func (e TokenExpiration) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, e.seconds, 10), nil
}

// UnmarshalJSON accepts any JSON number. Fractional seconds are truncated toward zero.
func (e *TokenExpiration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*e = Seconds(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	expiration, err := expirationFromFloat(f)
	if err != nil {
		return err
	}
	*e = expiration
	return nil
}

func expirationFromFloat(f float64) (TokenExpiration, error) {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return TokenExpiration{}, fmt.Errorf("expires_in %v out of range", f)
	}
	return Seconds(int64(f)), nil
}

// expirationFromValue converts a generic tree value. Form bodies carry numbers
// as strings, so numeric strings are accepted here but not in JSON.
func expirationFromValue(v any) (TokenExpiration, error) {
	switch v := v.(type) {
	case TokenExpiration:
		return v, nil
	case int:
		return Seconds(int64(v)), nil
	case int32:
		return Seconds(int64(v)), nil
	case int64:
		return Seconds(v), nil
	case float32:
		return expirationFromFloat(float64(v))
	case float64:
		return expirationFromFloat(v)
	case json.Number:
		return expirationFromString(v.String())
	case string:
		return expirationFromString(v)
	default:
		return TokenExpiration{}, fmt.Errorf("expires_in: unsupported value of type %T", v)
	}
}

func expirationFromString(s string) (TokenExpiration, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Seconds(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return TokenExpiration{}, fmt.Errorf("expires_in %q is not a number", s)
	}
	return expirationFromFloat(f)
}
