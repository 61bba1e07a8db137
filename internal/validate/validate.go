package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCoupon = regexp.MustCompile(`^[A-Z0-9_-]{2,32}$`)
	reStatus = regexp.MustCompile(`^(PENDING|PAID|SHIPPED|DELIVERED|CANCELLED)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/category/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// CouponCode normalizes to upper case and checks the allowed alphabet.
func CouponCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reCoupon.MatchString(s)
}

// OrderStatus validates allowed fulfillment statuses.
func OrderStatus(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reStatus.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Rating bounds review ratings to the 1..5 scale.
func Rating(n int) bool { return n >= 1 && n <= 5 }

// Qty clamps order quantities to a sane window.
func Qty(n int) bool { return n >= 1 && n <= 100 }

// Password enforces a length window plus character-class mix.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
