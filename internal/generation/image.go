package generation

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultImageMIME is the type attached to every image unless detection
// is enabled.
const DefaultImageMIME = "image/jpeg"

// Image is a decoded inline image.
type Image struct {
	MIMEType string
	Data     []byte
}

// dataURI is a parsed "data:[<mediatype>][;base64],<data>" value.
type dataURI struct {
	mediaType string
	payload   []byte
}

func parseDataURI(raw string) (dataURI, error) {
	header, payload, ok := strings.Cut(raw, ",")
	if !ok {
		return dataURI{}, fmt.Errorf("%w: missing comma", ErrInvalidImage)
	}
	header = strings.TrimPrefix(strings.TrimSpace(header), "data:")

	isBase64 := false
	params := strings.Split(header, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		decoded, err := decodeBase64(payload)
		if err != nil {
			return dataURI{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return dataURI{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		data = []byte(unescaped)
	}
	if len(data) == 0 {
		return dataURI{}, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}
	return dataURI{mediaType: mediaType, payload: data}, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// DecodeImage turns a data URI into an inline image. Unless detectMIME is
// set the result is always tagged DefaultImageMIME, whatever the source
// format. With detection the declared media type wins, then sniffing.
func DecodeImage(raw string, detectMIME bool) (*Image, error) {
	uri, err := parseDataURI(raw)
	if err != nil {
		return nil, err
	}
	img := &Image{MIMEType: DefaultImageMIME, Data: uri.payload}
	if !detectMIME {
		return img, nil
	}
	switch {
	case strings.HasPrefix(uri.mediaType, "image/"):
		img.MIMEType = uri.mediaType
	default:
		if sniffed := http.DetectContentType(uri.payload); strings.HasPrefix(sniffed, "image/") {
			img.MIMEType = sniffed
		}
	}
	return img, nil
}

// EncodeDataURI builds a base64 data URI, used for uploaded files.
func EncodeDataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
