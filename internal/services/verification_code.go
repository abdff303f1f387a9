package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const (
	verificationCodeBytes = 48
	base62Alphabet        = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// Message tags that prefix the payload signed by the mobile device.
const (
	TagRequest = "REQUEST"
	TagApprove = "APPROVE"
	TagReject  = "REJECT"
)

// GenerateVerificationCode returns 48 random bytes rendered in base62.
func GenerateVerificationCode() (string, error) {
	buf := make([]byte, verificationCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return encodeBase62(buf), nil
}

// HashVerificationCode is the at-rest form of a verification code.
func HashVerificationCode(code string) string {
	sum := blake2b.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func encodeBase62(data []byte) string {
	n := new(big.Int).SetBytes(data)
	if n.Sign() == 0 {
		return "0"
	}

	base := big.NewInt(62)
	mod := new(big.Int)
	var out []byte
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		out = append(out, base62Alphabet[mod.Int64()])
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// ExtractVerificationCode returns the code of a "{TAG}code|signature"
// message, or "" when the message does not carry the expected tag.
func ExtractVerificationCode(signedMessage, tag string) string {
	payload, _, ok := splitSignedMessage(signedMessage)
	if !ok {
		return ""
	}

	prefix := "{" + tag + "}"
	if !strings.HasPrefix(payload, prefix) {
		return ""
	}
	return payload[len(prefix):]
}

// splitSignedMessage splits "<payload>|<signature>". Exactly one separator
// is allowed.
func splitSignedMessage(signedMessage string) (payload, signature string, ok bool) {
	if strings.Count(signedMessage, "|") != 1 {
		return "", "", false
	}
	payload, signature, _ = strings.Cut(signedMessage, "|")
	if payload == "" || signature == "" {
		return "", "", false
	}
	return payload, signature, true
}
