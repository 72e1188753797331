// Package requests holds the typed inputs bound from request bodies. Each
// type validates itself so handlers can answer with the exact message the
// storefront client expects.
package requests

import (
	"strings"

	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/validate"
)

// MissingFields is the message for any absent required field.
const MissingFields = "Missing required fields"

// CSV splits a comma list, trimming blanks and dropping empty entries.
func CSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// checkTags runs tag validation and reports failures under message.
func checkTags(in any, message string) error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		if message == "" {
			message = validate.First(errs)
		}
		return apperrors.ValidationFields(message, errs)
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
