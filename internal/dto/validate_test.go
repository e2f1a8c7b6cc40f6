package dto

import (
	"testing"

	"repairs/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ClientRequest(t *testing.T) {
	ok := ClientRequest{Name: "Jane", Email: "jane@x.com", PhoneNumber: "+254700000000", Location: "Nairobi"}
	assert.NoError(t, Validate(ok))

	err := Validate(ClientRequest{Name: "J", Email: "not-an-email"})
	require.Error(t, err)
	fields, isFields := err.(ValidationErrors)
	require.True(t, isFields)
	assert.Equal(t, "min", fields["name"])
	assert.Equal(t, "email", fields["email"])
	assert.Equal(t, "required", fields["phoneNumber"])
	assert.Equal(t, "required", fields["location"])
}

func TestValidationErrors_ErrorIsSorted(t *testing.T) {
	err := ValidationErrors{"name": "required", "email": "email"}
	assert.Equal(t, "validation failed: email: email, name: required", err.Error())
}

func TestValidate_Enums(t *testing.T) {
	assert.NoError(t, Validate(JobStatusRequest{Status: model.JobPaymentComplete}))

	err := Validate(JobStatusRequest{Status: "archived"})
	require.Error(t, err)
	assert.Equal(t, "enum", err.(ValidationErrors)["status"])

	// omitempty lets create forms leave the status to the server default
	assert.NoError(t, Validate(JobRequest{Title: "Fix roof", Client: "c1"}))
}

func TestValidate_DecimalRules(t *testing.T) {
	err := Validate(PaymentRequest{Invoice: "i1", Amount: decimal.Zero, Method: model.MethodCash})
	require.Error(t, err)
	assert.Equal(t, "gt", err.(ValidationErrors)["amount"])

	assert.NoError(t, Validate(PaymentRequest{Invoice: "i1", Amount: decimal.NewFromInt(10), Method: model.MethodMpesa}))

	err = Validate(SaleRequest{Product: "p1", Job: "j1", Quantity: 1, Tax: decimal.NewFromInt(120)})
	require.Error(t, err)
	assert.Equal(t, "max", err.(ValidationErrors)["tax"])
}

func TestValidate_ExpensePayee(t *testing.T) {
	base := ExpenseRequest{Amount: decimal.NewFromInt(500), Method: model.MethodBankTransfer}

	contractor := base
	contractor.Contractor, contractor.JobCard = "k1", "jc1"
	assert.NoError(t, Validate(contractor))

	supplier := base
	supplier.Supplier, supplier.Stock = "s1", "st1"
	assert.NoError(t, Validate(supplier))

	both := contractor
	both.Supplier, both.Stock = "s1", "st1"
	err := Validate(both)
	require.Error(t, err)
	assert.Equal(t, "payee", err.(ValidationErrors)["contractor"])

	err = Validate(base)
	require.Error(t, err)
	assert.Equal(t, "payee", err.(ValidationErrors)["contractor"])
}

func TestValidate_PasswordConfirmation(t *testing.T) {
	err := Validate(ResetPasswordRequest{Token: "t", Password: "longenough", ConfirmPassword: "different1"})
	require.Error(t, err)
	assert.Equal(t, "eqfield", err.(ValidationErrors)["confirmPassword"])

	assert.NoError(t, Validate(ResetPasswordRequest{Token: "t", Password: "longenough", ConfirmPassword: "longenough"}))
}

func TestValidate_NestedFieldPath(t *testing.T) {
	err := Validate(CompanyRequest{
		CompanyName:  "Acme Repairs",
		Location:     "Nairobi",
		ContactInfos: []ContactInfoInput{{Type: "fax", Value: "123"}},
	})
	require.Error(t, err)
	assert.Equal(t, "oneof", err.(ValidationErrors)["contactInfos[0].type"])
}

func TestLoginResponse_ResolvedRole(t *testing.T) {
	embedded := &model.Role{ID: "r1", Title: "admin"}
	resp := LoginResponse{User: model.User{Role: model.Ref[model.Role]{ID: "r1", Value: embedded}}}
	assert.Equal(t, embedded, resp.ResolvedRole())

	explicit := &model.Role{ID: "r2"}
	resp.Role = explicit
	assert.Equal(t, explicit, resp.ResolvedRole())
}
