package session

import "strconv"

// StakeLabel formats a stake as "{small_blind}/{big_blind}{currency}".
func StakeLabel(sb, bb float64, c Currency) string {
	return short(sb) + "/" + short(bb) + string(c)
}

func short(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
