package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

func TestCreateEmployeeRequest_TrimsBeforeValidating(t *testing.T) {
	email := " ana@acme.co "
	req := CreateEmployeeRequest{FirstName: " Ana ", LastName: " Silva ", Email: &email}

	require.NoError(t, req.Validate())
	assert.Equal(t, "Ana", req.FirstName)
	assert.Equal(t, "Silva", req.LastName)
	require.NotNil(t, req.Email)
	assert.Equal(t, "ana@acme.co", *req.Email)
}

func TestCreateEmployeeRequest_BlankFields(t *testing.T) {
	blank := "   "
	req := CreateEmployeeRequest{FirstName: "  ", Email: &blank}

	err := req.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "first_name")
	assert.NotContains(t, verrs.ToMap(), "email")
	assert.Nil(t, req.Email)
}

func TestUpdateEmployeeRequest_TrimsBeforeValidating(t *testing.T) {
	email := "\tbruno@acme.co\n"
	req := UpdateEmployeeRequest{ID: "e1", FirstName: "Bruno ", Email: &email}
	require.NoError(t, req.Validate())
	assert.Equal(t, "bruno@acme.co", *req.Email)

	bad := " not-an-email "
	req.Email = &bad
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Equal(t, "invalid email format", verrs.ToMap()["email"])
}
