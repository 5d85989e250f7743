// Package whatsapp builds wa.me click-to-chat links for Costa Rican phone numbers.
package whatsapp

import (
	"errors"
	"net/url"
	"strings"
)

const (
	countryCode         = "506"
	internationalPrefix = "00"
	localDigits         = 8
	linkBaseURL         = "https://wa.me/"
)

// ErrInvalidPhone is returned when a phone number does not hold eight local digits.
var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone strips formatting and an optional 506 or 00506 country code,
// so "+506 8888-7777", "00506 8888 7777" and "88887777" all become "88887777".
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	for _, prefix := range []string{internationalPrefix + countryCode, countryCode} {
		if len(digits) == len(prefix)+localDigits && strings.HasPrefix(digits, prefix) {
			digits = digits[len(prefix):]
			break
		}
	}
	if len(digits) != localDigits {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

// Link returns https://wa.me/506XXXXXXXX?text=<message>.
func Link(phone, message string) (string, error) {
	local, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return linkBaseURL + countryCode + local + "?text=" + text, nil
}
