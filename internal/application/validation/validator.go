// Package validation reglas de campo de los formularios de la consola sobre go-playground/validator.
//
// Las reglas de fecha se evalúan contra "hoy" según el reloj inyectado, así los tests
// fijan la fecha. Los nombres de campo de los errores son los nombres JSON, con la ruta
// completa para estructuras anidadas (p. ej. "purchase_order.requester.email").
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
)

var (
	fiscalCodePattern = regexp.MustCompile(`^[A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z]$`)
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@micla\.info$`)
)

// Etiquetas propias reportadas desde las validaciones de estructura.
const (
	tagAfterStart   = "afterstart"
	tagAfterIssue   = "afterissue"
	tagRequiredVisa = "requiredvisa"
)

// IsFiscalCode indica si s tiene el formato de código fiscal (16 caracteres).
func IsFiscalCode(s string) bool {
	return fiscalCodePattern.MatchString(s)
}

// Validator valida formularios con las reglas de la consola.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New crea el validador. now nil usa time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	x := &Validator{v: validator.New(), now: now}

	x.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	x.register("fiscalcode", func(fl validator.FieldLevel) bool {
		return IsFiscalCode(fl.Field().String())
	})
	x.register("miclaemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	x.register("isodate", func(fl validator.FieldLevel) bool {
		_, err := entity.ParseDate(fl.Field().String())
		return err == nil
	})
	// future: estrictamente posterior a hoy (hoy no vale).
	x.register("future", func(fl validator.FieldLevel) bool {
		d, err := entity.ParseDate(fl.Field().String())
		return err == nil && d.After(x.Today())
	})
	// notpast: hoy o posterior.
	x.register("notpast", func(fl validator.FieldLevel) bool {
		d, err := entity.ParseDate(fl.Field().String())
		return err == nil && !d.Before(x.Today())
	})
	// adult: 18 años o más, contando solo el año de nacimiento.
	x.register("adult", func(fl validator.FieldLevel) bool {
		d, err := entity.ParseDate(fl.Field().String())
		return err == nil && x.Today().Time().Year()-d.Time().Year() >= 18
	})

	x.v.RegisterStructValidation(registerEmployeeRules, dto.RegisterEmployeeForm{})
	x.v.RegisterStructValidation(editEmployeeRules, dto.EmployeeForm{})
	x.v.RegisterStructValidation(purchaseOrderInputRules, dto.PurchaseOrderInput{})
	x.v.RegisterStructValidation(purchaseOrderFormRules, dto.PurchaseOrderForm{})

	return x
}

func (x *Validator) register(tag string, fn validator.Func) {
	if err := x.v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: registrar %q: %v", tag, err))
	}
}

// Today fecha de calendario actual según el reloj inyectado.
func (x *Validator) Today() entity.Date {
	return entity.DateOf(x.now())
}

// Struct valida s. Devuelve nil o un *domain.ValidationError con un FieldError por regla incumplida.
func (x *Validator) Struct(s any) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return out
}

// Var valida un valor suelto (p. ej. un parámetro de ruta) con las etiquetas dadas.
func (x *Validator) Var(field string, value any, tag string) error {
	err := x.v.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{Field: field, Message: message(fe)})
	}
	return out
}

// fieldPath quita el nombre del tipo raíz del namespace: "Req.purchase_order.po_number" -> "purchase_order.po_number".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func registerEmployeeRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(dto.RegisterEmployeeForm)
	checkAfter(sl, f.ContractValidityEndDate, f.ContractValidityStartDate,
		"contract_validity_end_date", "ContractValidityEndDate", tagAfterStart)
	checkVisa(sl, f.VisaStartDate, f.VisaEndDate)
}

func editEmployeeRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(dto.EmployeeForm)
	checkAfter(sl, f.ContractValidityEndDate, f.ContractValidityStartDate,
		"contract_validity_end_date", "ContractValidityEndDate", tagAfterStart)
	checkVisa(sl, f.VisaStartDate, f.VisaEndDate)
}

func purchaseOrderInputRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(dto.PurchaseOrderInput)
	checkAfter(sl, f.ValidityEndDate, f.IssueDate, "validity_end_date", "ValidityEndDate", tagAfterIssue)
}

func purchaseOrderFormRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(dto.PurchaseOrderForm)
	checkAfter(sl, f.PurchaseOrderValidityEndDate, f.IssueDate,
		"purchase_order_validity_end_date", "PurchaseOrderValidityEndDate", tagAfterIssue)
}

// checkAfter reporta tag sobre el campo end si end no es estrictamente posterior a start.
// Si alguna de las dos fechas falta o no se puede leer no reporta: eso lo cubren required/isodate.
func checkAfter(sl validator.StructLevel, end, start, field, structField, tag string) {
	if end == "" || start == "" {
		return
	}
	e, err1 := entity.ParseDate(end)
	s, err2 := entity.ParseDate(start)
	if err1 != nil || err2 != nil {
		return
	}
	if !e.After(s) {
		sl.ReportError(end, field, structField, tag, "")
	}
}

func checkVisa(sl validator.StructLevel, start, end string) {
	if start != "" && end == "" {
		sl.ReportError(end, "visa_end_date", "VisaEndDate", tagRequiredVisa, "")
		return
	}
	checkAfter(sl, end, start, "visa_end_date", "VisaEndDate", tagAfterStart)
}
