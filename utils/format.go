package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPounds renders a price as a currency-grouped integer, e.g. 1234567.8 -> "£1,234,567".
// Prices in the dataset are non-negative; the fraction is truncated like the dashboard did.
func FormatPounds(price float64) string {
	return "£" + groupThousands(int64(price))
}

// FormatPercent renders a percentage to one decimal place with a sign for
// negative values, e.g. 25.04 -> "25.0%", -3.25 -> "-3.2%".
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}

// PostcodeQuery makes a postcode safe for the lookup URL templates by
// replacing its spaces with '+'.
func PostcodeQuery(postcode string) string {
	return strings.ReplaceAll(strings.TrimSpace(postcode), " ", "+")
}

// LookupURL substitutes the postcode into one of the Lookup*URL templates.
func LookupURL(template, postcode string) string {
	return fmt.Sprintf(template, PostcodeQuery(postcode))
}

func groupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}
