package cdek

import (
	"bytes"

	"github.com/egorka-gh/cdek/xmlable"
)

// Payload returns request document the way carrier accepts it,
// every single quote replaced by double one.
// Attribute values are escaped by the encoder, so only markup quotes are affected.
func Payload(el *xmlable.Element) ([]byte, error) {
	raw, err := xmlable.Marshal(el)
	if err != nil {
		return nil, err
	}
	return bytes.ReplaceAll(raw, []byte("'"), []byte(`"`)), nil
}
