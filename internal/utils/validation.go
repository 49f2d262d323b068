package utils

import (
	"strings"
	"unicode"
)

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// OnlyDigits strips every non-digit rune from s.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func IsValidCPF(cpf string) bool {
	digits := OnlyDigits(cpf)
	if len(digits) != 11 || allSame(digits) {
		return false
	}

	check := func(n int) int {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(digits[i]-'0') * (n + 1 - i)
		}
		rest := (sum * 10) % 11
		if rest == 10 {
			rest = 0
		}
		return rest
	}

	return check(9) == int(digits[9]-'0') && check(10) == int(digits[10]-'0')
}

func IsValidCNPJ(cnpj string) bool {
	digits := OnlyDigits(cnpj)
	if len(digits) != 14 || allSame(digits) {
		return false
	}

	check := func(weights []int) int {
		sum := 0
		for i, w := range weights {
			sum += int(digits[i]-'0') * w
		}
		rest := sum % 11
		if rest < 2 {
			return 0
		}
		return 11 - rest
	}

	return check(cnpjWeights1) == int(digits[12]-'0') && check(cnpjWeights2) == int(digits[13]-'0')
}

// IsValidPhone accepts Brazilian landlines (10 digits) and mobiles (11),
// area code included.
func IsValidPhone(phone string) bool {
	n := len(OnlyDigits(phone))
	return n == 10 || n == 11
}

func IsValidZipCode(zip string) bool {
	return len(OnlyDigits(zip)) == 8
}

// IsValidPassword requires at least 6 characters with a lowercase letter
// and a digit.
func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}
	var lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && digit
}
