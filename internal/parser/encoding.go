package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// statementEncoding is one entry in the ordered decode-fallback list.
type statementEncoding struct {
	name   string
	decode func(data []byte) (string, error)
}

var errEncodingMismatch = errors.New("encoding mismatch")

// statementEncodings is tried in order; the first decoder that accepts the
// bytes wins. The legacy single-byte decoders reject NUL bytes so binary
// files fall through to ErrUnreadableFile instead of decoding as garbage.
var statementEncodings = []statementEncoding{
	{"utf-8-sig", decodeUTF8SIG},
	{"utf-8", decodeUTF8},
	{"windows-1252", decodeWindows1252},
	{"iso-8859-1", decodeLatin1},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeStatement walks the fallback list: try, stop on success, continue on
// failure, fail with ErrUnreadableFile when the list is exhausted.
func decodeStatement(data []byte) (string, string, error) {
	for _, enc := range statementEncodings {
		text, err := enc.decode(data)
		if err != nil {
			continue
		}
		return text, enc.name, nil
	}
	return "", "", ErrUnreadableFile
}

func decodeUTF8SIG(data []byte) (string, error) {
	if !bytes.HasPrefix(data, utf8BOM) {
		return "", errEncodingMismatch
	}
	return decodeUTF8(data[len(utf8BOM):])
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return "", errEncodingMismatch
	}
	return string(data), nil
}

func decodeWindows1252(data []byte) (string, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return "", errEncodingMismatch
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("windows-1252: %w", err)
	}
	// Undefined code points decode to the replacement rune; treat that as
	// a mismatch so the next decoder gets a chance.
	if strings.ContainsRune(string(out), utf8.RuneError) {
		return "", errEncodingMismatch
	}
	return string(out), nil
}

func decodeLatin1(data []byte) (string, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return "", errEncodingMismatch
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("iso-8859-1: %w", err)
	}
	return string(out), nil
}
