package form

import "strconv"

// ParseHours reads an hours value the way a lenient number input does:
// optional surrounding spaces, an optional sign and a leading run of digits.
// Anything after the digits is ignored. ok is false when no digit is found.
func ParseHours(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// TotalHours sums the hours of every row, skipping blank and non-numeric entries.
func TotalHours(rows []AttendanceRow) int {
	total := 0
	for _, r := range rows {
		if n, ok := ParseHours(r.Hours); ok {
			total += n
		}
	}
	return total
}

// validHours reports whether s is a whole number of hours in 0..23.
func validHours(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 23
}

func itoa(n int) string { return strconv.Itoa(n) }
