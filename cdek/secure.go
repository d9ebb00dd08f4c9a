package cdek

import (
	"crypto/md5"
	"encoding/hex"
)

// SecureToken returns request signature: hex(md5(date + "&" + password)).
// date must be exactly the Date attribute text of the request.
//
// MD5 is dictated by the carrier protocol, it authenticates nothing by modern standards.
func SecureToken(date, password string) string {
	sum := md5.Sum([]byte(date + "&" + password))
	return hex.EncodeToString(sum[:])
}
