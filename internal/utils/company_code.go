package utils

import (
	"strings"
)

// companyCodeAlphabet avoids 0/O and 1/I so codes can be read out over the phone.
const companyCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// companyCodeLength is the number of characters in a generated company code.
const companyCodeLength = 12

// GenerateCompanyCode creates a new shareable company code for a freshly created shop.
func GenerateCompanyCode() (string, error) {
	b, err := SecureRandomBytes(companyCodeLength)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(companyCodeLength)
	for _, v := range b {
		sb.WriteByte(companyCodeAlphabet[int(v)%len(companyCodeAlphabet)])
	}
	return sb.String(), nil
}

// MaskCompanyCode substitutes all but the last four characters with bullets for display.
// The code is credential-adjacent: the clear value is only returned from the explicit
// reveal endpoint that backs copy-to-clipboard.
func MaskCompanyCode(code string) string {
	if code == "" {
		return ""
	}
	const visible = 4
	if len(code) <= visible {
		return strings.Repeat("•", len(code))
	}
	return strings.Repeat("•", len(code)-visible) + code[len(code)-visible:]
}
