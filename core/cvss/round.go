package cvss

import "strconv"

// Round1 rounds x to one decimal place. Ties go to the even digit, judged
// on the exact binary value of x, so 0.25 becomes 0.2 and 0.35 becomes 0.3.
func Round1(x float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	return r
}
