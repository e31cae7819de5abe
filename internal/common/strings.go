package common

import (
	"context"
	"strings"
	"unicode/utf8"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
)

const compositeKeySeparator = "|"

// CleanString trims value and cuts it to maxLength runes. maxLength <= 0 disables the cut.
func CleanString(ctx context.Context, value string, maxLength int) string {
	cleaned := strings.TrimSpace(value)
	if maxLength <= 0 || utf8.RuneCountInString(cleaned) <= maxLength {
		return cleaned
	}

	xlog.Warn(ctx, "[CLEAN-STRING] value truncated",
		xlog.Int("original_length", utf8.RuneCountInString(cleaned)),
		xlog.Int("max_length", maxLength),
	)

	return TruncateRunes(cleaned, maxLength)
}

// TruncateRunes returns at most n leading runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// CreateCompositeKey joins the non-empty parts with "|".
func CreateCompositeKey(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, compositeKeySeparator)
}

// JoinNonEmpty joins the non-empty parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func UpperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
