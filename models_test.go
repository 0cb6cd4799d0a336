package farmacia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	farmacia "github.com/goliatone/go-farmacia"
)

func TestMedicationPayloadValidate(t *testing.T) {
	valid := farmacia.MedicationPayload{
		Description: "Paracetamol 500mg",
		UnitPrice:   3.50,
		Stock:       120,
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.Description = ""
	assert.Error(t, missing.Validate())

	free := valid
	free.UnitPrice = 0
	assert.Error(t, free.Validate(), "a zero price is treated as missing")

	negativeStock := valid
	negativeStock.Stock = -1
	assert.Error(t, negativeStock.Validate())

	empty := valid
	empty.Stock = 0
	assert.NoError(t, empty.Validate(), "out of stock is a legal state")
}

func TestPurchaseOrderPayloadValidate(t *testing.T) {
	valid := farmacia.PurchaseOrderPayload{
		IssuedAt:        "2024-03-15",
		Total:           1250.00,
		Status:          farmacia.OrderPending,
		SupplierInvoice: "F-00431",
		LabCode:         7,
	}
	assert.NoError(t, valid.Validate())

	badDate := valid
	badDate.IssuedAt = "15/03/2024"
	assert.Error(t, badDate.Validate())

	badStatus := valid
	badStatus.Status = "Entregada"
	assert.Error(t, badStatus.Validate())

	noInvoice := valid
	noInvoice.SupplierInvoice = ""
	assert.Error(t, noInvoice.Validate())

	noLab := valid
	noLab.LabCode = 0
	assert.Error(t, noLab.Validate())
}

func TestUserPayloadValidate(t *testing.T) {
	valid := farmacia.UserPayload{
		Name:  "Ana Torres",
		Email: "ana@farmacia.test",
		Role:  farmacia.RoleUsuario,
	}
	assert.NoError(t, valid.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())

	badRole := valid
	badRole.Role = "owner"
	assert.Error(t, badRole.Validate())
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, farmacia.LoginRequest{
		Email:    "a@b.com",
		Password: "secret",
	}.Validate())

	assert.Error(t, farmacia.LoginRequest{Password: "secret"}.Validate())
	assert.Error(t, farmacia.LoginRequest{Email: "a@b.com"}.Validate())
	assert.Error(t, farmacia.LoginRequest{Email: "nope", Password: "secret"}.Validate())
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := farmacia.RegisterRequest{
		Name:     "Ana Torres",
		Email:    "ana@farmacia.test",
		Password: "secret123",
	}
	assert.NoError(t, valid.Validate())

	shortPassword := valid
	shortPassword.Password = "abc"
	assert.Error(t, shortPassword.Validate())

	noName := valid
	noName.Name = ""
	assert.Error(t, noName.Validate())
}

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, farmacia.OrderPending.IsValid())
	assert.True(t, farmacia.OrderPaid.IsValid())
	assert.True(t, farmacia.OrderCancelled.IsValid())
	assert.False(t, farmacia.OrderStatus("Entregada").IsValid())
	assert.False(t, farmacia.OrderStatus("").IsValid())
}
