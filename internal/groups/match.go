package groups

import (
	"fmt"
	"regexp"

	"github.com/boudekerk/githooks/schema"
)

// MatchUserSpec evaluates one user specification token against a user
// identifier. Three forms exist:
//
//	^<regex>   regular expression match against the identifier
//	@<group>   transitive group membership
//	<literal>  exact equality
func (r *Resolver) MatchUserSpec(spec, user string) (bool, error) {
	if spec == "" {
		return false, nil
	}
	switch spec[0] {
	case schema.UserSpecRegexPrefix:
		// The leading '^' doubles as the regex anchor.
		re, err := regexp.Compile(spec)
		if err != nil {
			return false, schema.NewParseError(fmt.Sprintf("bad user pattern %q: %v", spec, err))
		}
		return re.MatchString(user), nil
	case schema.GroupMemberPrefix:
		return r.IsMember(user, spec[1:])
	default:
		return spec == user, nil
	}
}

// MatchAnyUserSpec reports whether any of the specification tokens matches
// the user. The token list typically comes straight out of a multi-valued
// config key; an empty list matches nobody.
func (r *Resolver) MatchAnyUserSpec(specs []string, user string) (bool, error) {
	for _, spec := range specs {
		ok, err := r.MatchUserSpec(spec, user)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
