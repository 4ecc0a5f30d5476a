//go:build linux || freebsd || openbsd || netbsd || dragonfly

package fontregistry

var platformChain = []string{"fontconfig", "system", "gofonts"}
