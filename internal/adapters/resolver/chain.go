package resolver

import "errors"

// Longest CNAME chain followed inside a single backend answer.
const maxChain = 16

var errAliasLoop = errors.New("alias chain too long or looping")

// followAliases walks a name -> target table to the end of the chain and returns the final name.
func followAliases(host string, aliases map[string]string) (string, error) {
	name := host
	for i := 0; i < maxChain; i++ {
		target, ok := aliases[name]
		if !ok {
			return name, nil
		}
		name = target
	}
	return "", errAliasLoop
}
