package handler

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/product-reviews/product-reviews/internal/shop"
)

// XValidator checks request shapes against their validate struct tags.
type XValidator struct {
	validate *validator.Validate
}

// NewValidator creates a validator reporting json field names.
func NewValidator() *XValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &XValidator{validate: v}
}

// Validate returns a ValidationError naming every failed field and rule,
// or nil when data is valid.
func (v *XValidator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Validation(err.Error(), nil)
	}

	fields := make(map[string]string, len(verrs))
	names := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		fields[fe.Field()] = rule
		names = append(names, fe.Field())
	}

	return Validation("invalid fields: "+strings.Join(names, ", "), fields)
}

// Trimmer is implemented by request shapes that clean up their fields
// before validation.
type Trimmer interface {
	Trim()
}

// BindJSON parses the request body into out and validates it.
// An empty or unparsable body is a MalformedRequest, a field of the wrong
// type is a ValidationError. The content type is not checked, storefront
// scripts often post JSON as text/plain.
func (v *XValidator) BindJSON(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return Malformed(errors.New("empty body"))
	}

	if err := c.App().Config().JSONDecoder(c.Body(), out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return Validation("invalid field type: "+typeErr.Field, map[string]string{typeErr.Field: "type"})
		}

		return Malformed(err)
	}

	if t, ok := out.(Trimmer); ok {
		t.Trim()
	}

	return v.Validate(out)
}

// RequiredShopQuery returns the normalized shop query parameter.
func RequiredShopQuery(c *fiber.Ctx) (string, error) {
	key := shop.Normalize(c.Query("shop"))
	if key == "" {
		return "", MissingField("shop")
	}

	return key, nil
}

// ShopFromLocals returns the shop authenticated for this request.
func ShopFromLocals(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalsShop).(string)

	return s
}

// OK is the body of a write that returns nothing else.
type OK struct {
	OK bool `json:"ok"`
}
