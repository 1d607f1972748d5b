package services

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rejects malformed input before it reaches the store. Field rules
// are declared as struct tags; cross-field rules run as ordinary checks after
// the field rules pass. Messages are the ones the forms display, in Spanish.

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the JSON field name the form knows
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError is a single field-scoped validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the local, field-scoped error kind. It is raised before
// any store call and never sent to the store.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the errors as a field -> message map for JSON responses.
// The first message per field wins.
func (e ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// CasoInput is the case form payload. Dates travel as YYYY-MM-DD strings.
type CasoInput struct {
	CorresponsalID          uint     `json:"corresponsal_id" validate:"required,min=1"`
	NroCasoAssistravel      string   `json:"nro_caso_assistravel" validate:"required"`
	NroCasoCorresponsal     string   `json:"nro_caso_corresponsal"`
	FechaDeInicio           string   `json:"fecha_de_inicio" validate:"required"`
	Pais                    string   `json:"pais" validate:"required"`
	Fee                     float64  `json:"fee" validate:"min=0"`
	CostoUSD                float64  `json:"costo_usd" validate:"min=0"`
	MontoAgregado           float64  `json:"monto_agregado" validate:"min=0"`
	CostoMonedaLocal        *float64 `json:"costo_moneda_local"`
	SimboloML               string   `json:"simbolo_ml" validate:"required"`
	InformeMedico           bool     `json:"informe_medico"`
	TieneFactura            bool     `json:"tiene_factura"`
	FechaEmisionFactura     string   `json:"fecha_emision_factura"`
	FechaVencimientoFactura string   `json:"fecha_vencimiento_factura"`
	FechaPagoFactura        string   `json:"fecha_pago_factura"`
	NroFactura              string   `json:"nro_factura"`
	Observaciones           string   `json:"observaciones"`
}

// ValidateCaso validates a case payload. The invoice-date rule is cross-field:
// an invoice flag or any dependent invoice date requires the issuance date.
// All three trigger conditions report against fecha_emision_factura so the
// user is always pointed at the missing root field.
func ValidateCaso(input CasoInput) ValidationErrors {
	errs := collectFieldErrors(validate.Struct(input), casoMessage)
	if errs != nil {
		return errs
	}

	needsEmision := input.TieneFactura ||
		input.FechaVencimientoFactura != "" ||
		input.FechaPagoFactura != ""
	if needsEmision && input.FechaEmisionFactura == "" {
		return ValidationErrors{{
			Field:   "fecha_emision_factura",
			Message: "Si el caso tiene factura, debe especificar la fecha de emisión",
		}}
	}
	return nil
}

func casoMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "corresponsal_id":
		return "Seleccione un corresponsal"
	case "nro_caso_assistravel":
		return "Número de caso requerido"
	case "fecha_de_inicio":
		return "Fecha de inicio requerida"
	case "pais":
		return "País requerido"
	case "fee":
		return "El fee debe ser mayor o igual a 0"
	case "costo_usd":
		return "El costo USD debe ser mayor o igual a 0"
	case "monto_agregado":
		return "El monto agregado debe ser mayor o igual a 0"
	case "simbolo_ml":
		return "Símbolo de moneda requerido"
	}
	return "Valor inválido"
}

// CorresponsalInput is the correspondent form payload. An empty pagina_web
// counts as "not provided" and passes.
type CorresponsalInput struct {
	Nombre    string `json:"nombre" validate:"required,max=100"`
	Contacto  string `json:"contacto" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Telefonos string `json:"telefonos"`
	PaginaWeb string `json:"pagina_web" validate:"omitempty,url"`
	Direccion string `json:"direccion"`
	PaisSede  string `json:"pais_sede" validate:"required"`
}

// ValidateCorresponsal validates a correspondent payload
func ValidateCorresponsal(input CorresponsalInput) ValidationErrors {
	return collectFieldErrors(validate.Struct(input), corresponsalMessage)
}

func corresponsalMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "nombre":
		if fe.Tag() == "max" {
			return "Nombre muy largo"
		}
		return "Nombre requerido"
	case "contacto":
		if fe.Tag() == "max" {
			return "Contacto muy largo"
		}
		return "Contacto requerido"
	case "email":
		if fe.Tag() == "email" {
			return "Email inválido"
		}
		return "Email requerido"
	case "pagina_web":
		return "URL inválida"
	case "pais_sede":
		return "País sede requerido"
	}
	return "Valor inválido"
}

// LoginInput is the login form payload
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ValidateLogin validates login credentials
func ValidateLogin(input LoginInput) ValidationErrors {
	return collectFieldErrors(validate.Struct(input), authMessage)
}

// RegisterInput is the registration form payload
type RegisterInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,min=6"`
	Nombre          string `json:"nombre" validate:"required,max=50"`
	Apellido        string `json:"apellido" validate:"required,max=50"`
	Rol             string `json:"rol" validate:"required,oneof=admin user"`
}

// ValidateRegister validates a registration payload. The mismatch check runs
// after field rules and reports against the confirmation field.
func ValidateRegister(input RegisterInput) ValidationErrors {
	errs := collectFieldErrors(validate.Struct(input), authMessage)
	if errs != nil {
		return errs
	}

	if input.Password != input.ConfirmPassword {
		return ValidationErrors{{
			Field:   "confirm_password",
			Message: "Las contraseñas no coinciden",
		}}
	}
	return nil
}

func authMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "email":
		if fe.Tag() == "email" {
			return "Email inválido"
		}
		return "Email requerido"
	case "password":
		return "La contraseña debe tener al menos 6 caracteres"
	case "confirm_password":
		return "Confirme la contraseña"
	case "nombre":
		if fe.Tag() == "max" {
			return "Nombre muy largo"
		}
		return "Nombre requerido"
	case "apellido":
		if fe.Tag() == "max" {
			return "Apellido muy largo"
		}
		return "Apellido requerido"
	case "rol":
		return "Seleccione un rol"
	}
	return "Valor inválido"
}

// FiltrosInput is the case-list query specification. Every field is optional.
type FiltrosInput struct {
	CorresponsalID uint   `json:"corresponsal_id"`
	Pais           string `json:"pais"`
	EstadoFactura  string `json:"estado_factura" validate:"omitempty,oneof='Pendiente' 'Pagada' 'Vencida' 'Sin Factura'"`
	FechaInicio    string `json:"fecha_inicio"`
	FechaFin       string `json:"fecha_fin"`
	Busqueda       string `json:"busqueda"`
}

// ValidateFiltros validates the filter criteria
func ValidateFiltros(input FiltrosInput) ValidationErrors {
	return collectFieldErrors(validate.Struct(input), func(fe validator.FieldError) string {
		if fe.Field() == "estado_factura" {
			return "Estado de factura inválido"
		}
		return "Valor inválido"
	})
}

// collectFieldErrors maps validator failures to field-scoped messages
func collectFieldErrors(err error, message func(validator.FieldError) string) ValidationErrors {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}
