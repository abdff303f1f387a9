package models

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	ibanMinLength       = 15
	ibanMaxLength       = 34
	accountNumberDigits = 10
)

var ErrInvalidIBAN = errors.New("invalid IBAN")

// GenerateIBAN builds an IBAN for country and an 8-digit bank code with a
// random 10-digit account number. Uniqueness is the caller's concern.
func GenerateIBAN(countryCode, bankCode string) (string, error) {
	var sb strings.Builder
	sb.WriteString(bankCode)
	for i := 0; i < accountNumberDigits; i++ {
		sb.WriteByte(byte('0' + rand.IntN(10)))
	}

	return BuildIBAN(countryCode, sb.String())
}

// BuildIBAN prefixes bban with the country code and ISO 13616 check digits.
func BuildIBAN(countryCode, bban string) (string, error) {
	countryCode = strings.ToUpper(countryCode)
	if len(countryCode) != 2 || !isUpperAlpha(countryCode) {
		return "", fmt.Errorf("%w: country code %q", ErrInvalidIBAN, countryCode)
	}

	remainder, ok := mod97(bban + countryCode + "00")
	if !ok {
		return "", fmt.Errorf("%w: bban %q", ErrInvalidIBAN, bban)
	}

	return fmt.Sprintf("%s%02d%s", countryCode, 98-remainder, bban), nil
}

// ValidateIBAN checks structure and the mod-97 checksum. Spaces are ignored.
func ValidateIBAN(iban string) bool {
	iban = NormalizeIBAN(iban)
	if len(iban) < ibanMinLength || len(iban) > ibanMaxLength {
		return false
	}
	if !isUpperAlpha(iban[:2]) {
		return false
	}
	if iban[2] < '0' || iban[2] > '9' || iban[3] < '0' || iban[3] > '9' {
		return false
	}

	remainder, ok := mod97(iban[4:] + iban[:4])
	return ok && remainder == 1
}

func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
}

// mod97 computes the remainder of the numeric rendering of s (A=10 ... Z=35)
// without building the full integer.
func mod97(s string) (int, bool) {
	remainder := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			remainder = (remainder*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			remainder = (remainder*100 + v) % 97
		default:
			return 0, false
		}
	}
	return remainder, true
}

func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
