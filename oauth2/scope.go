package oauth2

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/jrsteele09/go-oauth2-models/internal/errors"
	"github.com/jrsteele09/go-oauth2-models/internal/utils"
)

// Scope is the set of access token scopes of RFC 6749 section 3.3.
// Tokens are case-sensitive and order carries no meaning.
// The zero value is the empty scope.
//
// Copies of a Scope share storage; Clone before calling Insert on a copy.
type Scope struct {
	items map[string]struct{}
}

// EmptyScope is the scope with no tokens, equal to the zero value.
func EmptyScope() Scope {
	return Scope{}
}

// ParseScope splits a space-delimited scope string and validates each token.
// Runs of whitespace are treated as a single delimiter.
func ParseScope(input string) (Scope, error) {
	if input == "" {
		return Scope{}, ErrEmptyValue
	}
	return NewScope(strings.Fields(input)...)
}

// NewScope builds a scope from individual tokens. Duplicates collapse.
func NewScope(items ...string) (Scope, error) {
	var s Scope
	for _, item := range items {
		if _, err := s.Insert(item); err != nil {
			return Scope{}, err
		}
	}
	return s, nil
}

// scopeFromWire keeps whatever a peer sent, skipping empty tokens only.
func scopeFromWire(tokens []string) Scope {
	var s Scope
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if s.items == nil {
			s.items = make(map[string]struct{}, len(tokens))
		}
		s.items[token] = struct{}{}
	}
	return s
}

// scopeFromValue applies the lenient wire rules to a decoded JSON value:
// null is empty, a string is split on whitespace, an array holds one token per element.
func scopeFromValue(v any) (Scope, error) {
	switch v := v.(type) {
	case nil:
		return Scope{}, nil
	case Scope:
		return v, nil
	case string:
		return scopeFromWire(strings.Fields(v)), nil
	case []string:
		return scopeFromWire(v), nil
	case []any:
		items, err := utils.ToStringSlice(v)
		if err != nil {
			return Scope{}, errors.Wrapf(err, "scope")
		}
		return scopeFromWire(items), nil
	default:
		return Scope{}, fmt.Errorf("scope: unsupported value of type %T", v)
	}
}

func validateScopeToken(token string) error {
	if token == "" {
		return ErrEmptyValue
	}
	return errors.Wrapf(URLCharacters.Validate(token), "scope token %q", token)
}

// Insert adds token to the scope. It reports false when the token was already present.
func (s *Scope) Insert(token string) (bool, error) {
	if err := validateScopeToken(token); err != nil {
		return false, err
	}
	if _, ok := s.items[token]; ok {
		return false, nil
	}
	if s.items == nil {
		s.items = make(map[string]struct{})
	}
	s.items[token] = struct{}{}
	return true, nil
}

// Clone returns a scope that does not share storage with s.
func (s Scope) Clone() Scope {
	if len(s.items) == 0 {
		return Scope{}
	}
	return Scope{items: maps.Clone(s.items)}
}

func (s Scope) Contains(token string) bool {
	_, ok := s.items[token]
	return ok
}

// Len is the number of distinct tokens.
func (s Scope) Len() int {
	return len(s.items)
}

func (s Scope) IsEmpty() bool {
	return len(s.items) == 0
}

// IsZero lets encoding/json omit an empty scope tagged omitzero.
func (s Scope) IsZero() bool {
	return s.IsEmpty()
}

// Items returns the tokens in lexical order.
func (s Scope) Items() []string {
	return slices.Sorted(maps.Keys(s.items))
}

// All iterates the tokens in no particular order.
func (s Scope) All() iter.Seq[string] {
	return maps.Keys(s.items)
}

// String joins the sorted tokens with single spaces.
func (s Scope) String() string {
	return strings.Join(s.Items(), " ")
}

func (s Scope) Equal(other Scope) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for item := range s.items {
		if _, ok := other.items[item]; !ok {
			return false
		}
	}
	return true
}

// EqualItems reports whether items has as many elements as s has tokens and
// every element is in s. A list holding duplicates never equals a scope.
func (s Scope) EqualItems(items []string) bool {
	if len(items) != len(s.items) {
		return false
	}
	for _, item := range items {
		if _, ok := s.items[item]; !ok {
			return false
		}
	}
	return true
}

// IsValid reports whether every token is made of URLCharacters. Scopes decoded
// from the wire are not validated, so a server can check them here.
func (s Scope) IsValid() bool {
	for item := range s.items {
		if validateScopeToken(item) != nil {
			return false
		}
	}
	return true
}

// RequestsOpenID reports whether the scope asks for an OpenID Connect ID token.
func (s Scope) RequestsOpenID() bool {
	return s.Contains(oidc.ScopeOpenID)
}

func (s Scope) RequestsOfflineAccess() bool {
	return s.Contains(oidc.ScopeOfflineAccess)
}

func (s Scope) MarshalJSON() ([]byte, error) {
	if s.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

func (s *Scope) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	scope, err := scopeFromValue(raw)
	if err != nil {
		return err
	}
	*s = scope
	return nil
}
