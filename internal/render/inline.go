package render

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	codeSpanRe    = regexp.MustCompile("`([^`]+)`")
	placeholderRe = regexp.MustCompile("\x00(\\d+)\x00")
	strongEmRe    = regexp.MustCompile(`\*\*\*([^*\s](?:[^*]*[^*\s])?)\*\*\*`)
	boldRe        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe      = regexp.MustCompile(`\*([^*\s](?:[^*]*[^*\s])?)\*`)

	// A signed number ending on a digit or %. A leading separator is allowed ("+.5%").
	positiveDeltaRe = regexp.MustCompile(`\+(?:\d|[.,]\d)(?:[\d.,]*\d)?%?`)
	negativeDeltaRe = regexp.MustCompile(`[-−](?:\d|[.,]\d)(?:[\d.,]*\d)?%?`)
)

const (
	classPositive = "tag-green"
	classNegative = "tag-red"
)

// FormatInline applies the inline substitutions to a single logical line.
// Code spans are swapped for placeholders while the other passes run, so
// emphasis can wrap a code span but nothing is tagged inside one.
func FormatInline(line string) string {
	if line == "" {
		return ""
	}
	var codes []string
	s := line
	if strings.Contains(s, "`") {
		s = codeSpanRe.ReplaceAllStringFunc(s, func(m string) string {
			codes = append(codes, m[1:len(m)-1])
			return "\x00" + strconv.Itoa(len(codes)-1) + "\x00"
		})
	}

	s = strongEmRe.ReplaceAllString(s, "<strong><em>$1</em></strong>")
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = tagDeltas(s, positiveDeltaRe, classPositive)
	s = tagDeltas(s, negativeDeltaRe, classNegative)

	if len(codes) == 0 {
		return s
	}
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		i, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || i >= len(codes) {
			return m
		}
		return "<code>" + codes[i] + "</code>"
	})
}

// tagDeltas wraps every match of re that starts a token.
func tagDeltas(s string, re *regexp.Regexp, class string) string {
	locs := re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(locs)*32)
	last := 0
	for _, loc := range locs {
		if !startsToken(s[:loc[0]]) {
			continue
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(`<span class="` + class + `">`)
		b.WriteString(s[loc[0]:loc[1]])
		b.WriteString("</span>")
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// startsToken reports whether a sign right after before begins a new token:
// it must not follow a word character or another sign.
func startsToken(before string) bool {
	r, size := utf8.DecodeLastRuneInString(before)
	if size == 0 {
		return true
	}
	switch {
	case r == '_' || r == '+' || r == '-' || r == '−':
		return false
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return false
	}
	return true
}
