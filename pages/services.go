package pages

import (
	"context"

	goerrors "github.com/goliatone/go-errors"

	farmacia "github.com/goliatone/go-farmacia"
	"github.com/goliatone/go-farmacia/client"
)

// Medications returns the synchronizer backing the inventory page.
func Medications(api *client.Client, session farmacia.Session, opts ...Option) *Synchronizer[farmacia.Medication, farmacia.MedicationPayload] {
	return NewSynchronizer[farmacia.Medication, farmacia.MedicationPayload](
		farmacia.ResourceMedications, medicationService{api}, session, opts...,
	)
}

// PurchaseOrders returns the synchronizer backing the purchase orders page.
func PurchaseOrders(api *client.Client, session farmacia.Session, opts ...Option) *Synchronizer[farmacia.PurchaseOrder, farmacia.PurchaseOrderPayload] {
	return NewSynchronizer[farmacia.PurchaseOrder, farmacia.PurchaseOrderPayload](
		farmacia.ResourceOrders, orderService{api}, session, opts...,
	)
}

// Users returns the synchronizer backing the staff directory page. Update-only
// on create: accounts enter through registration, so Create is rejected before
// touching the network.
func Users(api *client.Client, session farmacia.Session, opts ...Option) *Synchronizer[farmacia.UserAccount, farmacia.UserPayload] {
	return NewSynchronizer[farmacia.UserAccount, farmacia.UserPayload](
		farmacia.ResourceUsers, userService{api}, session, opts...,
	)
}

type medicationService struct {
	api *client.Client
}

func (s medicationService) List(ctx context.Context) ([]farmacia.Medication, error) {
	return s.api.ListMedications(ctx)
}

func (s medicationService) Create(ctx context.Context, payload farmacia.MedicationPayload) error {
	return s.api.CreateMedication(ctx, payload)
}

func (s medicationService) Update(ctx context.Context, id int64, payload farmacia.MedicationPayload) error {
	return s.api.UpdateMedication(ctx, id, payload)
}

func (s medicationService) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteMedication(ctx, id)
}

type orderService struct {
	api *client.Client
}

func (s orderService) List(ctx context.Context) ([]farmacia.PurchaseOrder, error) {
	return s.api.ListPurchaseOrders(ctx)
}

func (s orderService) Create(ctx context.Context, payload farmacia.PurchaseOrderPayload) error {
	return s.api.CreatePurchaseOrder(ctx, payload)
}

func (s orderService) Update(ctx context.Context, id int64, payload farmacia.PurchaseOrderPayload) error {
	return s.api.UpdatePurchaseOrder(ctx, id, payload)
}

func (s orderService) Delete(ctx context.Context, id int64) error {
	return s.api.DeletePurchaseOrder(ctx, id)
}

type userService struct {
	api *client.Client
}

func (s userService) List(ctx context.Context) ([]farmacia.UserAccount, error) {
	return s.api.ListUsers(ctx)
}

func (s userService) Create(ctx context.Context, payload farmacia.UserPayload) error {
	return goerrors.New("user accounts are created through registration", goerrors.CategoryBadInput).
		WithCode(goerrors.CodeBadRequest)
}

func (s userService) Update(ctx context.Context, id int64, payload farmacia.UserPayload) error {
	return s.api.UpdateUser(ctx, id, payload)
}

func (s userService) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteUser(ctx, id)
}
