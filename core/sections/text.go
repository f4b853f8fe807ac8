package sections

import (
	"bytes"
	"os"

	"github.com/FocuswithJustin/worshipdesk/core/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadText returns the verbatim UTF-8 contents of a fixed text such as the
// creed or the Lord's prayer. A missing file yields "".
func LoadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.NewIO("read", path, err)
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}
