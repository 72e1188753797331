// Package ctx gives handlers a single request context with helpers for
// params, binding and the JSON envelopes.
//
//	func Show(c *ctx.Context) {
//	    p, err := svc.Get(c.Context(), c.Param("id"))
//	    if err != nil {
//	        c.Fail(err)
//	        return
//	    }
//	    c.Success(response.M{"product": p})
//	}
//
//	router.Get("/api/products/{id}", "products.show", ctx.Wrap(Show))
package ctx

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/bind"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
	"github.com/shashiranjanraj/shopfront/pkg/response"
	"github.com/shashiranjanraj/shopfront/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap adapts a HandlerFunc to http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value, "" when absent.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// DefaultQuery returns the query value or def when empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// QueryBool is true only for "true" or "1".
func (c *Context) QueryBool(key string) bool {
	v := strings.ToLower(c.Query(key))
	return v == "true" || v == "1"
}

// QueryInt parses an integer query value, def on absence or error.
func (c *Context) QueryInt(key string, def int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil {
		return n
	}
	return def
}

// Window reads ?limit= and ?skip=.
func (c *Context) Window(defaultLimit int) pagination.Params {
	return pagination.FromRequest(c.R, defaultLimit)
}

func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// Cookie returns a cookie's value, "" when absent.
func (c *Context) Cookie(name string) string {
	cookie, err := c.R.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (c *Context) Method() string { return c.R.Method }
func (c *Context) Path() string   { return c.R.URL.Path }

// ClientIP honours X-Forwarded-For and X-Real-Ip before RemoteAddr.
func (c *Context) ClientIP() string {
	if fwd := c.R.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if real := c.R.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	ip := c.R.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// Context returns the request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Set stores a per-request value.
func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// MustGet panics when key is absent.
func (c *Context) MustGet(key string) any {
	v, ok := c.Get(key)
	if !ok {
		panic(fmt.Sprintf("ctx: key %q not found in store", key))
	}
	return v
}

func (c *Context) GetString(key string) string {
	v, _ := c.Get(key)
	s, _ := v.(string)
	return s
}

// Bind decodes a JSON, multipart or urlencoded body into dest and validates
// it. On failure it writes a 400 and returns false.
func (c *Context) Bind(dest any) bool {
	errs, err := bind.Auto(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	if v, ok := dest.(bind.Validatable); ok {
		if err := v.Validate(); err != nil {
			c.Fail(err)
			return false
		}
	}
	return true
}

// Files returns uploaded files under key after Bind parsed the form.
func (c *Context) Files(key string) []*multipart.FileHeader {
	return bind.File(c.R, key)
}

// SetCookie writes an HttpOnly cookie scoped to "/".
func (c *Context) SetCookie(name, value string, maxAge int, secure bool) {
	http.SetCookie(c.W, &http.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires a cookie.
func (c *Context) ClearCookie(name string) {
	http.SetCookie(c.W, &http.Cookie{
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
	})
}

func (c *Context) JSON(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

// Success sends 200 {"success":true, ...payload}.
func (c *Context) Success(payload response.M) {
	c.status = http.StatusOK
	response.Success(c.W, payload)
}

// Created sends 201 {"success":true, ...payload}.
func (c *Context) Created(payload response.M) {
	c.status = http.StatusCreated
	response.Created(c.W, payload)
}

// Paginated sends a list with page metadata.
func (c *Context) Paginated(key string, items any, total int64, p pagination.Params) {
	c.status = http.StatusOK
	response.Paginated(c.W, key, items, pagination.NewMeta(total, p))
}

// Error sends {"error": message}.
func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

// ValidationError sends 400 with the first field message as "error".
func (c *Context) ValidationError(errs map[string]string) {
	c.status = http.StatusBadRequest
	response.ValidationError(c.W, validate.First(errs), errs)
}

// Fail maps an error to its status and public message.
func (c *Context) Fail(err error) {
	c.status = apperrors.HTTPStatus(err)
	response.Fail(c.W, c.R, err)
}

// Redirect sends an HTTP redirect.
func (c *Context) Redirect(code int, url string) {
	c.status = code
	http.Redirect(c.W, c.R, url, code)
}

// WrittenStatus returns the status written so far, 0 if none.
func (c *Context) WrittenStatus() int { return c.status }
