package dataset

import (
	"regexp"
	"strconv"
)

var statParts = regexp.MustCompile(`^(\d+) out of (\d+)$`)

// imageKeys is the allow-list of ratios with a pre-produced illustration.
// Any ratio outside this list renders without an image.
var imageKeys = map[[2]int]string{
	{3, 4}:  "three",
	{7, 10}: "seven",
	{8, 10}: "eight",
	{9, 10}: "nine",
}

// ParseStat extracts the numerator and denominator from a record's display
// text. ok is false when the text does not match "<n> out of <m>".
func ParseStat(text string) (n, m int, ok bool) {
	sub := statParts.FindStringSubmatch(text)
	if sub == nil {
		return 0, 0, false
	}
	n, err := strconv.Atoi(sub[1])
	if err != nil {
		return 0, 0, false
	}
	m, err = strconv.Atoi(sub[2])
	if err != nil {
		return 0, 0, false
	}
	return n, m, true
}

// ImageKey returns the illustration key for a record's text, or "" when no
// illustration exists for that ratio.
func ImageKey(text string) string {
	n, m, ok := ParseStat(text)
	if !ok {
		return ""
	}
	return imageKeys[[2]int{n, m}]
}
