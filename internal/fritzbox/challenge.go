package fritzbox

import (
	"crypto/md5"
	"encoding/hex"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ChallengeResponse computes the login response token for a server challenge:
// challenge + "-" + hex(md5(UTF-16LE(challenge) || UTF-16LE("-") || UTF-16LE(password))).
func ChallengeResponse(challenge, password string) string {
	h := md5.New()
	h.Write(encodeUTF16LE(challenge))
	h.Write(encodeUTF16LE("-"))
	h.Write(encodeUTF16LE(password))
	return challenge + "-" + hex.EncodeToString(h.Sum(nil))
}

// encodeUTF16LE never fails: invalid UTF-8 is encoded as U+FFFD.
func encodeUTF16LE(s string) []byte {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return b
}
