package service

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidImage  = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	msgEmptyFile     = "The submitted file is empty."
	msgUsernameTaken = "A user with that username already exists."
	msgSlugTaken     = "Group with this Slug already exists."
	msgInvalidSlug   = "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

type Upload struct {
	Filename string
	Data     []byte
}

type PostForm struct {
	Text    string  `form:"text" validate:"required"`
	GroupID *int64  `form:"group" validate:"omitempty,gt=0"`
	Image   *Upload `form:"-"`
}

type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

type GroupForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=50,slug"`
	Description string `form:"description"`
}

type SignUpForm struct {
	Username string `form:"username" validate:"required,max=150,excludesall=/"`
	Password string `form:"password" validate:"required,min=8,max=72"`
}

// FormError carries per-field messages of a rejected submission.
type FormError struct {
	Fields map[string][]string
}

func (e *FormError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *FormError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *FormError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], " ")))
	}
	return "form: " + strings.Join(parts, "; ")
}

func (e *FormError) Unwrap() error {
	return ErrInvalidRequest
}

// checkForm runs struct validation and collects messages into a FormError.
func checkForm(form any) *FormError {
	fe := &FormError{}

	err := validate.Struct(form)
	if err == nil {
		return fe
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fe.Add("__all__", err.Error())
		return fe
	}
	for _, v := range verrs {
		fe.Add(v.Field(), fieldMessage(v))
	}
	return fe
}

func fieldMessage(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", v.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", v.Param())
	case "gt":
		return msgInvalidChoice
	case "slug":
		return msgInvalidSlug
	default:
		return "Enter a valid value."
	}
}

func checkImage(u *Upload) string {
	if len(u.Data) == 0 {
		return msgEmptyFile
	}
	if !strings.HasPrefix(mimetype.Detect(u.Data).String(), "image/") {
		return msgInvalidImage
	}
	return ""
}

func (f PostForm) normalized() PostForm {
	f.Text = strings.TrimSpace(f.Text)
	if f.Image != nil && f.Image.Filename == "" && len(f.Image.Data) == 0 {
		f.Image = nil
	}
	return f
}

func (f CommentForm) normalized() CommentForm {
	f.Text = strings.TrimSpace(f.Text)
	return f
}

func (f GroupForm) normalized() GroupForm {
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Description = strings.TrimSpace(f.Description)
	return f
}

func (f SignUpForm) normalized() SignUpForm {
	f.Username = strings.TrimSpace(f.Username)
	return f
}
