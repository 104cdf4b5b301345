package pinterest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/giantswarm/go-pinterest/internal/util"
)

// Pinterest OAuth scope identifiers.
const (
	// ScopeReadPublic allows GET on a user's Pins and boards.
	ScopeReadPublic = "read_public"
	// ScopeWritePublic allows PATCH, POST and DELETE on a user's Pins and boards.
	ScopeWritePublic = "write_public"
	// ScopeReadRelationships allows GET on a user's follows and followers.
	ScopeReadRelationships = "read_relationships"
	// ScopeWriteRelationships allows PATCH, POST and DELETE on a user's follows and followers.
	ScopeWriteRelationships = "write_relationships"
)

// ErrUnknownScope is returned by ParseScope for scope names Pinterest does not define.
var ErrUnknownScope = errors.New("unknown pinterest scope")

// Scope defines which permissions the token should grant.
// The zero value requests no permissions.
type Scope struct {
	// ReadPublic requests ScopeReadPublic.
	ReadPublic bool
	// WritePublic requests ScopeWritePublic.
	WritePublic bool
	// ReadRelationships requests ScopeReadRelationships.
	ReadRelationships bool
	// WriteRelationships requests ScopeWriteRelationships.
	WriteRelationships bool
}

// Scopes returns the scope identifiers of all enabled flags.
//
// The order is fixed: read_public, read_relationships, write_public,
// write_relationships. It differs from the field order and is what ends up
// in the authorization URL, so it must not be changed.
func (s Scope) Scopes() []string {
	scopes := make([]string, 0, 4)
	if s.ReadPublic {
		scopes = append(scopes, ScopeReadPublic)
	}
	if s.ReadRelationships {
		scopes = append(scopes, ScopeReadRelationships)
	}
	if s.WritePublic {
		scopes = append(scopes, ScopeWritePublic)
	}
	if s.WriteRelationships {
		scopes = append(scopes, ScopeWriteRelationships)
	}
	return scopes
}

// String returns the space separated scope list, as sent to Pinterest.
func (s Scope) String() string {
	return strings.Join(s.Scopes(), " ")
}

// ParseScope builds a Scope from scope identifiers. Each argument may itself
// be a space or comma separated list. Empty items are ignored; unknown names
// return an error wrapping ErrUnknownScope.
func ParseScope(scopes ...string) (Scope, error) {
	var s Scope
	for _, item := range scopes {
		for _, name := range util.SplitList(item) {
			switch name {
			case ScopeReadPublic:
				s.ReadPublic = true
			case ScopeWritePublic:
				s.WritePublic = true
			case ScopeReadRelationships:
				s.ReadRelationships = true
			case ScopeWriteRelationships:
				s.WriteRelationships = true
			default:
				return Scope{}, fmt.Errorf("%w: %q", ErrUnknownScope, name)
			}
		}
	}
	return s, nil
}
