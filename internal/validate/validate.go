package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"billetera/internal/domain"
)

// Messages shown for client-side failures.
const (
	MsgMissingPayload   = "Faltan los datos de la solicitud."
	MsgMissingDocumento = "El documento es obligatorio."
	MsgMissingCelular   = "El celular es obligatorio."
	MsgMissingNombres   = "Los nombres son obligatorios."
	MsgInvalidEmail     = "El email no es válido."
	MsgInvalidAmount    = "El valor debe ser un número mayor a cero."
	MsgMissingParams    = "Se requieren el sessionId y el token."
	MsgInvalidInput     = "Los datos ingresados no son válidos."
)

// emailPattern accepts non-whitespace segments around a single '@' with at
// least one '.' in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Failure is a rejected input: the code for machines, the message for people.
type Failure struct {
	Code    domain.ErrorCode
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

func fail(code domain.ErrorCode, msg string) *Failure {
	return &Failure{Code: code, Message: msg}
}

// ErrValidatorInit is returned when a custom rule cannot be registered.
var ErrValidatorInit = errors.New("validator initialization failed")

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

func initValidator() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())

	if err := vld.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("%w: 'notblank': %w", ErrValidatorInit, err)
	}
	if err := vld.RegisterValidation("wallet_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("%w: 'wallet_email': %w", ErrValidatorInit, err)
	}
	// decimal.Decimal is a struct; the rule reads the field directly instead
	// of registering a custom type func.
	if err := vld.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	}); err != nil {
		return nil, fmt.Errorf("%w: 'positive_decimal': %w", ErrValidatorInit, err)
	}
	return vld, nil
}

func getValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = initValidator()
	})
	return validate, errValidate
}

// fieldFailures maps a failing struct field to its Failure.
var fieldFailures = map[string]Failure{
	"Documento": {Code: domain.CodeMissingDocumento, Message: MsgMissingDocumento},
	"Celular":   {Code: domain.CodeMissingCelular, Message: MsgMissingCelular},
	"Nombres":   {Code: domain.CodeMissingNombres, Message: MsgMissingNombres},
	"Email":     {Code: domain.CodeInvalidEmail, Message: MsgInvalidEmail},
	"Valor":     {Code: domain.CodeInvalidAmount, Message: MsgInvalidAmount},
}

// check runs the tag rules on payload and maps the first failing field.
// A zero-valued payload is reported as MISSING_PAYLOAD. When override is set,
// any rule failure is reported as override instead of the per-field mapping.
func check(payload any, override *Failure) *Failure {
	if reflect.ValueOf(payload).IsZero() {
		return fail(domain.CodeMissingPayload, MsgMissingPayload)
	}
	vld, err := getValidator()
	if err != nil {
		return fail(domain.CodeUnknownError, MsgInvalidInput)
	}
	err = vld.Struct(payload)
	if err == nil {
		return nil
	}
	if override != nil {
		return override
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if f, ok := fieldFailures[fieldErrs[0].StructField()]; ok {
			return fail(f.Code, f.Message)
		}
	}
	return fail(domain.CodeUnknownError, MsgInvalidInput)
}

// ClientProfile checks a registration payload.
func ClientProfile(p domain.ClientProfile) *Failure { return check(p, nil) }

// RechargeRequest checks a recharge payload.
func RechargeRequest(r domain.RechargeRequest) *Failure { return check(r, nil) }

// PaymentRequest checks a payment request payload.
func PaymentRequest(r domain.PaymentRequest) *Failure { return check(r, nil) }

// ConfirmRequest requires both the session id and the token. Any gap is
// reported as MISSING_PARAMS, including an entirely empty request.
func ConfirmRequest(r domain.ConfirmRequest) *Failure {
	if r == (domain.ConfirmRequest{}) {
		return fail(domain.CodeMissingParams, MsgMissingParams)
	}
	return check(r, fail(domain.CodeMissingParams, MsgMissingParams))
}

// BalanceQuery requires a documento; celular is optional.
func BalanceQuery(q domain.BalanceQuery) *Failure {
	if strings.TrimSpace(q.Documento) == "" {
		return fail(domain.CodeMissingDocumento, MsgMissingDocumento)
	}
	return check(q, nil)
}

// Documento rejects empty or whitespace-only identifiers.
func Documento(s string) *Failure {
	if strings.TrimSpace(s) == "" {
		return fail(domain.CodeMissingDocumento, MsgMissingDocumento)
	}
	return nil
}

// Celular rejects empty or whitespace-only phone numbers.
func Celular(s string) *Failure {
	if strings.TrimSpace(s) == "" {
		return fail(domain.CodeMissingCelular, MsgMissingCelular)
	}
	return nil
}

// Email accepts local@domain.tld-shaped addresses.
func Email(s string) *Failure {
	if !emailPattern.MatchString(s) {
		return fail(domain.CodeInvalidEmail, MsgInvalidEmail)
	}
	return nil
}

// Amount accepts values strictly greater than zero.
func Amount(d decimal.Decimal) *Failure {
	if !d.IsPositive() {
		return fail(domain.CodeInvalidAmount, MsgInvalidAmount)
	}
	return nil
}

// ParseAmount reads a form amount. Surrounding whitespace is ignored; empty,
// non-numeric, zero and negative text all fail with INVALID_AMOUNT.
func ParseAmount(raw string) (decimal.Decimal, *Failure) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fail(domain.CodeInvalidAmount, MsgInvalidAmount)
	}
	if f := Amount(d); f != nil {
		return decimal.Zero, f
	}
	return d, nil
}
