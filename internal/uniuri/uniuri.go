package uniuri

import (
	"crypto/rand"
)

const (
	// KeyLen is the length of the random part of uploaded object names.
	KeyLen = 8

	// byteRange is the total number of possible byte values (2^8).
	byteRange = 256
)

// KeyChars are safe in urls and on case-insensitive filesystems.
var KeyChars = []byte("abcdefghijklmnopqrstuvwxyz0123456789")

// NewKey returns a random string of KeyLen characters from KeyChars.
func NewKey() string {
	return NewLenChars(KeyLen, KeyChars)
}

// NewLenChars returns a random string of the given length built from chars
// (2 to 256 characters). Random bytes above the largest multiple of len(chars)
// are dropped so every character is equally likely.
func NewLenChars(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > byteRange {
		panic("uniuri: wrong charset length for NewLenChars")
	}

	limit := byteRange - (byteRange % clen)
	out := make([]byte, 0, length)
	buf := make([]byte, length*2) //nolint:mnd

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf {
			if int(rb) >= limit {
				continue
			}

			out = append(out, chars[int(rb)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}
