//go:build !(linux || freebsd || openbsd || netbsd || dragonfly || darwin || windows)

package fontregistry

var platformChain = []string{"gofonts"}
