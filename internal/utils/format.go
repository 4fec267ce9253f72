package utils

import "strings"

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders a Brazilian phone number with area code:
// 11 digits become (11) 99999-8888, 10 digits become (11) 3333-4444.
// Longer inputs keep the leading 11 digits; anything shorter than 10
// is returned unchanged.
func FormatPhone(phone string) string {
	d := Digits(phone)
	switch {
	case len(d) == 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	case len(d) == 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	case len(d) > 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	default:
		return phone
	}
}
