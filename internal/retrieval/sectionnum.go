package retrieval

// CompareSectionNumbers implements the alphanumeric-aware comparator
// required by P8: "41" < "41A" < "41B" < "100" < "100A". Each number is
// split into its leading integer prefix and trailing alphanumeric suffix;
// prefixes compare numerically, suffixes compare lexicographically.
func CompareSectionNumbers(a, b string) int {
	aPrefix, aSuffix := splitNumericPrefix(a)
	bPrefix, bSuffix := splitNumericPrefix(b)

	if aPrefix != bPrefix {
		if aPrefix < bPrefix {
			return -1
		}
		return 1
	}
	if aSuffix == bSuffix {
		return 0
	}
	if aSuffix < bSuffix {
		return -1
	}
	return 1
}

// splitNumericPrefix splits a section number like "364A" into (364, "A").
// A number with no leading digits (malformed input) sorts with prefix 0 and
// the whole string as suffix.
func splitNumericPrefix(number string) (int, string) {
	i := 0
	for i < len(number) && number[i] >= '0' && number[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, number
	}
	prefix := 0
	for _, c := range number[:i] {
		prefix = prefix*10 + int(c-'0')
	}
	return prefix, number[i:]
}
