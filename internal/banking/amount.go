package banking

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyWords = regexp.MustCompile(`dollars?|bucks?|euros?|usd|\$|€`)
	amountDigits  = regexp.MustCompile(`(\d+(?:\.\d{1,2})?)`)
)

// wordAmounts is checked in order; the first word found in the transcript
// wins. Compound amounts ("two hundred fifty") resolve to their first
// component only.
var wordAmounts = []struct {
	word  string
	value float64
}{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
	{"twenty", 20}, {"thirty", 30}, {"forty", 40}, {"fifty", 50},
	{"sixty", 60}, {"seventy", 70}, {"eighty", 80}, {"ninety", 90},
	{"hundred", 100}, {"thousand", 1000},
}

// ExtractAmount pulls a monetary amount out of a spoken transcript. Digits
// take precedence over number words. Returns false when no amount is found
// or the amount is not positive.
func ExtractAmount(text string) (float64, bool) {
	text = strings.TrimSpace(currencyWords.ReplaceAllString(strings.ToLower(text), ""))

	if m := amountDigits.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil && v > 0 {
			return v, true
		}
		return 0, false
	}

	for _, w := range wordAmounts {
		if strings.Contains(text, w.word) {
			return w.value, true
		}
	}
	return 0, false
}
