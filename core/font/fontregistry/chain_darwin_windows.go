//go:build darwin || windows

package fontregistry

var platformChain = []string{"system", "gofonts"}
