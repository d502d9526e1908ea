package address

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Load fetches the script source an Address names: a local file for
// zonkey:/file:/bare-path addresses, an HTTP GET for http(s):. Source is
// always decoded to UTF-8 regardless of a BOM the file was saved with,
// the same detect-then-transform approach the teacher's loader uses for
// DWScript source files.
func Load(addr Address) (string, error) {
	switch addr.Scheme {
	case SchemeZonkey, SchemeFile:
		data, err := os.ReadFile(addr.Path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", addr.Raw, err)
		}
		return decode(data)
	case SchemeHTTP, SchemeHTTPS:
		resp, err := http.Get(addr.Path)
		if err != nil {
			return "", fmt.Errorf("fetching %s: %w", addr.Raw, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("fetching %s: HTTP %d", addr.Raw, resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("reading response from %s: %w", addr.Raw, err)
		}
		return decode(data)
	default:
		return "", fmt.Errorf("cannot load address %s", addr.Raw)
	}
}

// decode strips a UTF-8/UTF-16 BOM and transcodes to UTF-8, falling back
// to a byte-per-rune promotion for anything that is neither valid UTF-8
// nor BOM-tagged UTF-16.
func decode(data []byte) (string, error) {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:]), nil
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(data, unicode.LittleEndian)
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(data, unicode.BigEndian)
	case utf8.Valid(data):
		return string(data), nil
	default:
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		return string(runes), nil
	}
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16: %w", err)
	}
	return strings.TrimPrefix(string(bytes.TrimPrefix(out, []byte{0xEF, 0xBB, 0xBF})), "﻿"), nil
}
