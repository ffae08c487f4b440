package bind

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	perr "pontual/internal/platform/errors"
)

// Upload is one file received through a multipart form
type Upload struct {
	Name string // base name as sent by the client
	Data []byte
}

// UploadOptions controls multipart parsing
type UploadOptions struct {
	Field    string   // form field holding the files, default "documents"
	MaxBytes int64    // total body cap, default 32MB
	Exts     []string // allowed lowercase extensions including the dot; empty allows all
}

func defaultUploadOptions() UploadOptions {
	return UploadOptions{Field: "documents", MaxBytes: 32 << 20}
}

// ParseUploads reads every file under the configured field.
// Each file must carry a name; names are reduced to their base
func ParseUploads(w http.ResponseWriter, r *http.Request, opts ...UploadOptions) ([]Upload, error) {
	o := defaultUploadOptions()
	if len(opts) > 0 {
		if opts[0].Field != "" {
			o.Field = opts[0].Field
		}
		if opts[0].MaxBytes > 0 {
			o.MaxBytes = opts[0].MaxBytes
		}
		o.Exts = opts[0].Exts
	}

	r.Body = http.MaxBytesReader(w, r.Body, o.MaxBytes)
	if err := r.ParseMultipartForm(o.MaxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, perr.InvalidArgf("upload exceeds %d bytes", o.MaxBytes)
		}
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid multipart form")
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[o.Field]
	if len(headers) == 0 {
		return nil, perr.WithField(perr.Validationf("no files under %q", o.Field), o.Field)
	}

	out := make([]Upload, 0, len(headers))
	for _, fh := range headers {
		name := filepath.Base(strings.TrimSpace(fh.Filename))
		if name == "" || name == "." || name == string(filepath.Separator) {
			return nil, perr.WithField(perr.Validationf("file without a name"), o.Field)
		}
		if !allowedExt(name, o.Exts) {
			return nil, perr.WithField(perr.Validationf("unsupported document type: %s", name), o.Field)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "open %s", name)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read %s", name)
		}
		out = append(out, Upload{Name: name, Data: data})
	}
	return out, nil
}

func allowedExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
