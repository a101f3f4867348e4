package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nareshkanna-nk/Young-wealth/internal/application"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/upload"
	"github.com/nareshkanna-nk/Young-wealth/pkg/validation"
)

// multipartSlack leaves room for the non-file parts of a form on top of the file cap.
const multipartSlack = 1 << 20

// Uploads bundles what handlers need to accept files.
type Uploads struct {
	Storage  upload.Storage
	MaxBytes int64
}

// readFields turns a JSON, urlencoded or multipart body into Fields.
// Keys present in the body are present in Fields; JSON scalars keep their literal text.
func readFields(c *gin.Context, up Uploads) (application.Fields, error) {
	in := application.Fields{}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return in, nil
	}

	ct, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	switch ct {
	case gin.MIMEMultipartPOSTForm:
		if up.MaxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, up.MaxBytes+multipartSlack)
		}
		form, err := c.MultipartForm()
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return nil, &upload.Error{Field: "file", Reason: fmt.Sprintf("request exceeds %d bytes", up.MaxBytes), TooLarge: true}
			}
			return nil, &badRequest{details: map[string]string{"payload": "invalid multipart form"}}
		}
		for k, vs := range form.Value {
			if len(vs) > 0 {
				in[k] = vs[0]
			}
		}
	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, &badRequest{details: map[string]string{"payload": "invalid form"}}
		}
		for k, vs := range c.Request.PostForm {
			if len(vs) > 0 {
				in[k] = vs[0]
			}
		}
	default:
		raw := map[string]any{}
		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, &badRequest{details: validation.ToDetails(err)}
		}
		for k, v := range raw {
			in[k] = scalarText(v)
		}
	}
	return in, nil
}

func scalarText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

// readFile returns the accepted upload for rule, or nil when the request carries none.
func readFile(c *gin.Context, up Uploads, rule upload.Rule) (application.Attachment, error) {
	if c.Request.MultipartForm == nil {
		return nil, nil
	}
	fhs := c.Request.MultipartForm.File[rule.Field]
	if len(fhs) == 0 {
		return nil, nil
	}
	f, err := upload.Accept(up.Storage, rule, fhs[0], up.MaxBytes)
	if err != nil {
		return nil, err
	}
	return f, nil
}
