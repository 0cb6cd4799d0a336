package farmacia

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// DateLayout is the wire format of fechaEmision.
const DateLayout = "2006-01-02"

// Medication is an inventory item as served by GET /medicamentos.
type Medication struct {
	ID          int64   `json:"id"`
	Description string  `json:"descripcionMed"`
	UnitPrice   float64 `json:"precioVentaUni"`
	Stock       int     `json:"stock"`
}

func (m Medication) ResourceID() int64 { return m.ID }

// OrderStatus is the Situacion enum of a purchase order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pendiente"
	OrderPaid      OrderStatus = "Pagada"
	OrderCancelled OrderStatus = "Cancelada"
)

// IsValid checks if the status is one of the predefined values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderCancelled:
		return true
	default:
		return false
	}
}

// PurchaseOrder is a supplier order as served by GET /ordencompras. Field
// casing follows the remote API, which mixes conventions.
type PurchaseOrder struct {
	ID              int64       `json:"id"`
	IssuedAt        string      `json:"fechaEmision"`
	Total           float64     `json:"Total"`
	Status          OrderStatus `json:"Situacion"`
	SupplierInvoice string      `json:"NrofacturaProv"`
	LabCode         int         `json:"CodLab"`
}

func (o PurchaseOrder) ResourceID() int64 { return o.ID }

// UserAccount is a staff account as served by GET /usuarios.
type UserAccount struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Role  Role   `json:"rol"`
}

func (u UserAccount) ResourceID() int64 { return u.ID }

// MedicationPayload is the validated body for creating or updating a
// medication. The id is never client-chosen; the server assigns it.
type MedicationPayload struct {
	Description string  `json:"descripcionMed"`
	UnitPrice   float64 `json:"precioVentaUni"`
	Stock       int     `json:"stock"`
}

func (p MedicationPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Description, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.UnitPrice, validation.Required, validation.Min(0.0)),
		validation.Field(&p.Stock, validation.Min(0)),
	)
}

// PurchaseOrderPayload is the validated body for creating or updating a
// purchase order.
type PurchaseOrderPayload struct {
	IssuedAt        string      `json:"fechaEmision"`
	Total           float64     `json:"Total"`
	Status          OrderStatus `json:"Situacion"`
	SupplierInvoice string      `json:"NrofacturaProv"`
	LabCode         int         `json:"CodLab"`
}

func (p PurchaseOrderPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.IssuedAt, validation.Required, validation.Date(DateLayout)),
		validation.Field(&p.Total, validation.Required, validation.Min(0.0)),
		validation.Field(&p.Status, validation.Required, validation.In(OrderPending, OrderPaid, OrderCancelled)),
		validation.Field(&p.SupplierInvoice, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.LabCode, validation.Required, validation.Min(1)),
	)
}

// UserPayload is the validated body for updating a staff account. There is no
// create endpoint for users; accounts enter through registration.
type UserPayload struct {
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Role  Role   `json:"rol"`
}

func (p UserPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Role, validation.Required, validation.In(RoleUsuario, RoleAdmin)),
	)
}

// LoginRequest is the credentials exchange payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterRequest is the account creation payload for POST /register.
type RegisterRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
}
