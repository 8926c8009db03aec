package parser

import "strings"

const (
	commentOpen  = "[[["
	commentClose = "]"
)

// SkipComment scans past a triple-bracket comment whose body starts at pos
// and returns the position right after it. Brackets nest: the depth starts
// at 3, each "[" adds one and each "]" removes one. opening is the offset of
// the "[[[" reported when the comment never closes.
func SkipComment(s string, pos, opening int) (int, error) {
	depth := len(commentOpen)
	for depth > 0 {
		i := strings.IndexAny(s[pos:], "[]")
		if i < 0 {
			return 0, &UnmatchedOpenError{
				Offset:  opening,
				Opening: commentOpen,
				Closing: commentClose,
				Missing: strings.Repeat(commentClose, depth),
			}
		}
		pos += i
		if s[pos] == '[' {
			depth++
		} else {
			depth--
		}
		pos++
	}
	return pos, nil
}

// StripComments returns s with every triple-bracket comment removed. Unlike
// Parse it does not look at any other delimiter. Error offsets are relative
// to s.
func StripComments(s string) (string, error) {
	first := strings.Index(s, commentOpen)
	if first < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	pos := 0
	for pos < len(s) {
		i := strings.Index(s[pos:], commentOpen)
		if i < 0 {
			b.WriteString(s[pos:])
			break
		}
		start := pos + i
		b.WriteString(s[pos:start])
		end, err := SkipComment(s, start+len(commentOpen), start)
		if err != nil {
			return "", err
		}
		pos = end
	}
	return b.String(), nil
}
