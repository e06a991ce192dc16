package client

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/sharelink/internal/client/models"
)

const (
	fieldFile = "file"
	fieldText = "text"
)

// encodedBody is a multipart body with a known size, so progress can be
// reported against the whole request rather than the payload alone.
type encodedBody struct {
	io.Reader
	contentType string
	size        int64
	closer      io.Closer
}

func (b *encodedBody) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeSubmission writes exactly one form field: "file" for a FileInput,
// "text" for a TextInput. The file itself is streamed, not buffered.
func encodeSubmission(in models.SubmissionInput) (*encodedBody, error) {
	switch v := in.(type) {
	case models.FileInput:
		return encodeFile(v)
	case models.TextInput:
		return encodeText(v)
	default:
		return nil, fmt.Errorf("unsupported submission %T", in)
	}
}

func encodeText(in models.TextInput) (*encodedBody, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField(fieldText, in.Text); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	return &encodedBody{
		Reader:      bytes.NewReader(buf.Bytes()),
		contentType: mw.FormDataContentType(),
		size:        int64(buf.Len()),
	}, nil
}

func encodeFile(in models.FileInput) (*encodedBody, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		fieldFile, quoteEscaper.Replace(in.Name)))
	h.Set("Content-Type", contentTypeOf(in.Name))

	if _, err := mw.CreatePart(h); err != nil {
		return nil, err
	}
	head := append([]byte(nil), buf.Bytes()...)

	buf.Reset()
	if err := mw.Close(); err != nil {
		return nil, err
	}
	tail := append([]byte(nil), buf.Bytes()...)

	payload, err := in.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", in.Name, err)
	}

	return &encodedBody{
		Reader:      io.MultiReader(bytes.NewReader(head), payload, bytes.NewReader(tail)),
		contentType: mw.FormDataContentType(),
		size:        int64(len(head)) + in.Size + int64(len(tail)),
		closer:      payload,
	}, nil
}

func contentTypeOf(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
