package generation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDataURI(t *testing.T) {
	uri, err := parseDataURI("data:image/webp;base64,UklGRg==")
	require.NoError(t, err)
	require.Equal(t, "image/webp", uri.mediaType)
	require.Equal(t, []byte("RIFF"), uri.payload)

	uri, err = parseDataURI("data:image/svg+xml,%3Csvg%2F%3E")
	require.NoError(t, err)
	require.Equal(t, "image/svg+xml", uri.mediaType)
	require.Equal(t, []byte("<svg/>"), uri.payload)

	uri, err = parseDataURI("data:image/png;base64,UklGRg")
	require.NoError(t, err)
	require.Equal(t, []byte("RIFF"), uri.payload)

	_, err = parseDataURI("image/png;base64")
	require.ErrorIs(t, err, ErrInvalidImage)

	_, err = parseDataURI("data:image/png;base64,")
	require.ErrorIs(t, err, ErrInvalidImage)

	_, err = parseDataURI("data:image/png;base64,@@@")
	require.ErrorIs(t, err, ErrInvalidImage)
}

func TestDecodeImage_MIME(t *testing.T) {
	img, err := DecodeImage("data:image/webp;base64,UklGRg==", false)
	require.NoError(t, err)
	require.Equal(t, DefaultImageMIME, img.MIMEType)

	img, err = DecodeImage("data:image/webp;base64,UklGRg==", true)
	require.NoError(t, err)
	require.Equal(t, "image/webp", img.MIMEType)

	gif := "data:application/octet-stream;base64,R0lGODlhAQABAAAAACw="
	img, err = DecodeImage(gif, true)
	require.NoError(t, err)
	require.Equal(t, "image/gif", img.MIMEType)

	img, err = DecodeImage("data:;base64,aGVsbG8=", true)
	require.NoError(t, err)
	require.Equal(t, DefaultImageMIME, img.MIMEType)
}

func TestEncodeDataURI(t *testing.T) {
	require.Equal(t, "data:image/png;base64,aGk=", EncodeDataURI("image/png", []byte("hi")))
	require.Equal(t, "data:text/plain;base64,aGk=", EncodeDataURI("", []byte("hi")))

	img, err := DecodeImage(EncodeDataURI("image/png", []byte("hi")), true)
	require.NoError(t, err)
	require.Equal(t, []byte("hi"), img.Data)
	require.Equal(t, "image/png", img.MIMEType)
}
