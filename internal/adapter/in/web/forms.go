package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"yatube/internal/service"
)

const (
	maxUploadBytes  = 5 << 20
	maxRequestBytes = 2 * maxUploadBytes

	msgImageTooLarge = "The uploaded image is larger than 5 MB."
)

// errBodyTooLarge is returned by parseForm when the request body is over
// maxRequestBytes.
var errBodyTooLarge = errors.New("request body too large")

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxUploadBytes)
	} else {
		err = r.ParseForm()
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: %w", service.ErrInvalidRequest, errBodyTooLarge)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
	}
	return nil
}

// postForm reads text, group and image from a submission. A group value that
// is not a number is kept as zero so it fails as an invalid choice. An image
// over maxUploadBytes comes back as a *service.FormError on "image".
func postForm(w http.ResponseWriter, r *http.Request) (service.PostForm, error) {
	if err := parseForm(w, r); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			return service.PostForm{}, imageTooLarge()
		}
		return service.PostForm{}, err
	}

	form := service.PostForm{Text: r.PostFormValue("text")}

	if raw := strings.TrimSpace(r.PostFormValue("group")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			id = 0
		}
		form.GroupID = &id
	}

	upload, err := formFile(r, "image")
	if err != nil {
		return form, err
	}
	form.Image = upload

	return form, nil
}

func formFile(r *http.Request, field string) (*service.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxUploadBytes {
		return nil, imageTooLarge()
	}
	return &service.Upload{Filename: hdr.Filename, Data: data}, nil
}

func imageTooLarge() *service.FormError {
	fe := &service.FormError{}
	fe.Add("image", msgImageTooLarge)
	return fe
}

func postFormView(form service.PostForm, fe *service.FormError) FormView {
	group := ""
	if form.GroupID != nil {
		group = strconv.FormatInt(*form.GroupID, 10)
	}
	out := FormView{Fields: map[string]string{
		"text":  form.Text,
		"group": group,
		"image": "",
	}}
	if fe != nil {
		out.Errors = fe.Fields
	}
	return out
}
