// Package checkout turns a cart into an order message and hands it to a relay.
package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	playground "github.com/go-playground/validator/v10"

	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/validator"
)

// Field messages shown to the customer.
const (
	MsgRequired        = "هذا الحقل مطلوب"
	MsgNameTooShort    = "الاسم قصير جداً"
	MsgPhoneInvalid    = "رقم جوال غير صالح"
	MsgAddressTooVague = "يرجى كتابة عنوان تفصيلي"
	MsgCartEmpty       = "يرجى إضافة منتجات إلى السلة للمتابعة"
)

const phoneTag = "phone10"

func init() {
	if err := validator.RegisterPattern(phoneTag, `^[0-9]{10}$`); err != nil {
		panic(err)
	}
}

// Customer holds the delivery details typed at checkout.
type Customer struct {
	Name    string `json:"name" validate:"required,min=3"`
	Phone   string `json:"phone" validate:"required,phone10"`
	Address string `json:"address" validate:"required,min=10"`
	City    string `json:"city" validate:"required"`
}

// Validate checks every field and returns a *ValidationError listing the
// first failure of each.
func (c Customer) Validate() error {
	err := validator.Validate(c)
	if err == nil {
		return nil
	}
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return &ValidationError{Fields: ve.FieldsWith(fieldMessage)}
	}
	return fmt.Errorf("validate customer: %w", err)
}

func fieldMessage(fe playground.FieldError) string {
	if fe.Tag() == "required" {
		return MsgRequired
	}
	switch fe.Field() {
	case "name":
		return MsgNameTooShort
	case "phone":
		return MsgPhoneInvalid
	case "address":
		return MsgAddressTooVague
	}
	return MsgRequired
}

// ValidationError maps field names to localized messages. It blocks
// formatting and sending.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "invalid checkout: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}
