// Package format holds the pure presentation helpers shared by handlers and
// toast texts: Indonesian Rupiah amounts, id-ID timestamps and local phone
// number grouping.
package format

import (
	"strconv"
	"strings"
	"time"
)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Currency renders an integer IDR amount as "Rp12.345" with dot thousand
// separators and no decimal places.
func Currency(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("Rp")
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Date renders a timestamp the way the dashboard shows it, e.g.
// "5 Januari 2026 14.30".
func Date(t time.Time) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(t.Day()))
	b.WriteByte(' ')
	b.WriteString(indonesianMonths[t.Month()-1])
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(t.Year()))
	b.WriteByte(' ')
	b.WriteString(twoDigits(t.Hour()))
	b.WriteByte('.')
	b.WriteString(twoDigits(t.Minute()))
	return b.String()
}

func twoDigits(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// PhoneNumber groups a local "08..." number as 0812-3456-7890. Numbers that
// are not plain 12-digit local numbers are returned unchanged.
func PhoneNumber(phone string) string {
	var cleaned strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			cleaned.WriteRune(r)
		}
	}
	d := cleaned.String()
	if !strings.HasPrefix(d, "0") || len(d) != 12 {
		return phone
	}
	return d[:4] + "-" + d[4:8] + "-" + d[8:]
}
