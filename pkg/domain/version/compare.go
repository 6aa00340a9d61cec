// Package version orders free-form package version strings the way
// Repology does (libversion semantics), so that "newest" as reported by the
// version service and the locally packaged version can be compared.
package version

import (
	"cmp"
	"strings"
)

type rank int

// Ranks in ascending order. Padding components (when one version has fewer
// components than the other) rank as zero.
const (
	rankPreRelease rank = iota
	rankZero
	rankPostRelease
	rankNonZero
	rankLetterSuffix
)

type component struct {
	rank  rank
	value string // digits without leading zeros, or a lowercase word
	alpha bool
}

// Compare returns -1 if a is older than b, 1 if a is newer than b and 0 if
// both denote the same version.
func Compare(a, b string) int {
	ca, cb := parse(a), parse(b)

	n := max(len(ca), len(cb))
	for i := 0; i < n; i++ {
		if res := compareComponents(at(ca, i), at(cb, i)); res != 0 {
			return res
		}
	}
	return 0
}

func at(components []component, i int) component {
	if i < len(components) {
		return components[i]
	}
	return component{rank: rankZero}
}

func compareComponents(a, b component) int {
	if a.rank != b.rank {
		return cmp.Compare(a.rank, b.rank)
	}

	switch {
	case a.value == "" && b.value == "":
		return 0
	case a.value == "":
		return -1
	case b.value == "":
		return 1
	}

	switch {
	case a.alpha && b.alpha:
		// only the first letter is significant: "a" == "alpha", "b" == "beta"
		return cmp.Compare(a.value[0], b.value[0])
	case a.alpha:
		return -1
	case b.alpha:
		return 1
	}

	if len(a.value) != len(b.value) {
		return cmp.Compare(len(a.value), len(b.value))
	}
	return strings.Compare(a.value, b.value)
}

func parse(s string) []component {
	var out []component

	for i := 0; i < len(s); {
		if !isAlnum(s[i]) {
			i++
			continue
		}

		if isAlpha(s[i]) {
			end := skip(s, i, isAlpha)
			word := strings.ToLower(s[i:end])
			out = append(out, component{rank: classify(word, rankPreRelease), value: word, alpha: true})
			i = end
			continue
		}

		end := skip(s, i, isDigit)
		digits := strings.TrimLeft(s[i:end], "0")
		c := component{rank: rankNonZero, value: digits}
		if digits == "" {
			c.rank = rankZero
		}
		out = append(out, c)
		i = end

		// A letter run glued to a number and not followed by a digit is a
		// suffix: 1.0a, 1.0a.1, but not 1.0a1.
		if i < len(s) && isAlpha(s[i]) {
			wordEnd := skip(s, i, isAlpha)
			if wordEnd == len(s) || !isDigit(s[wordEnd]) {
				word := strings.ToLower(s[i:wordEnd])
				out = append(out, component{rank: classify(word, rankLetterSuffix), value: word, alpha: true})
				i = wordEnd
			}
		}
	}

	return out
}

// classify maps well-known release keywords to their rank and everything
// else to fallback.
func classify(word string, fallback rank) rank {
	switch {
	case word == "alpha", word == "beta", word == "rc", strings.HasPrefix(word, "pre"):
		return rankPreRelease
	case strings.HasPrefix(word, "post"), strings.HasPrefix(word, "patch"), word == "pl", word == "errata":
		return rankPostRelease
	default:
		return fallback
	}
}

func skip(s string, i int, class func(byte) bool) int {
	for i < len(s) && class(s[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlnum(c byte) bool { return isDigit(c) || isAlpha(c) }
