// Package bind decodes an HTTP request body into a typed input struct and
// runs validation on it.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/shopfront/config"
	"github.com/shashiranjanraj/shopfront/pkg/validate"
)

// MaxBodyBytes is the JSON body cap (MAX_BODY_BYTES, default 4 MB).
func MaxBodyBytes() int64 { return config.Int64("MAX_BODY_BYTES", 4<<20) }

// MaxUploadBytes is the multipart body cap (MAX_UPLOAD_BYTES, default 20 MB).
func MaxUploadBytes() int64 { return config.Int64("MAX_UPLOAD_BYTES", 20<<20) }

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) on validation failure and (nil, err) when the body is
// malformed or too large.
func JSON(r *http.Request, dest any) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return check(dest), nil
}

// Form parses a multipart or urlencoded body and copies fields into dest by
// their `form` tag, then runs validation. Supported field kinds are string,
// bool, the int and float families, pointers to those, and []string
// (repeated keys).
func Form(r *http.Request, dest any) (map[string]string, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	if err := assign(r, dest); err != nil {
		return nil, err
	}
	return check(dest), nil
}

// Auto picks JSON or Form from the Content-Type header.
func Auto(r *http.Request, dest any) (map[string]string, error) {
	if IsJSON(r) {
		return JSON(r, dest)
	}
	return Form(r, dest)
}

// IsJSON reports whether the request declares a JSON body.
func IsJSON(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/json"
}

// File returns the uploaded files under key. The form must already be
// parsed (Form or Auto does that).
func File(r *http.Request, key string) []*multipart.FileHeader {
	if r.MultipartForm == nil || r.MultipartForm.File == nil {
		return nil
	}
	return r.MultipartForm.File[key]
}

func parseForm(r *http.Request) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxUploadBytes())

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mt == "multipart/form-data" {
		err = r.ParseMultipartForm(8 << 20)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return fmt.Errorf("invalid form body: %w", err)
	}
	return nil
}

// Validatable inputs check themselves with their own messages; tag
// validation is skipped for them and the caller invokes Validate.
type Validatable interface {
	Validate() error
}

func check(dest any) map[string]string {
	if _, ok := dest.(Validatable); ok {
		return nil
	}
	errs := validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs
	}
	return nil
}

func assign(r *http.Request, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind: destination must be a pointer to a struct")
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		key, _, _ := strings.Cut(sf.Tag.Get("form"), ",")
		if key == "" || key == "-" {
			continue
		}
		values, present := r.Form[key]
		if !present || len(values) == 0 {
			continue
		}
		if err := setField(rv.Field(i), values); err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
	}
	return nil
}

func setField(field reflect.Value, values []string) error {
	if field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String {
		field.Set(reflect.ValueOf(append([]string(nil), values...)))
		return nil
	}

	raw := strings.TrimSpace(values[0])
	if field.Kind() == reflect.Ptr {
		if raw == "" {
			return nil
		}
		ptr := reflect.New(field.Type().Elem())
		if err := setScalar(ptr.Elem(), raw); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}
	return setScalar(field, raw)
}

func setScalar(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		if raw == "" {
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
