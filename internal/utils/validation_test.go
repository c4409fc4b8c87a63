package utils

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

func TestFieldErrorsMapsJSONNames(t *testing.T) {
	payload := samplePayload{Email: "pas-un-email", Quantity: -2}
	err := binding.Validator.ValidateStruct(&payload)
	require.Error(t, err)

	fields := FieldErrors(err)

	assert.Equal(t, "Adresse email invalide", fields["email"])
	assert.Equal(t, "Ce champ est obligatoire", fields["first_name"])
	assert.Contains(t, fields["quantity"], "supérieur à 0")
}

func TestFieldErrorsNonValidatorError(t *testing.T) {
	fields := FieldErrors(assert.AnError)
	assert.Equal(t, "Données invalides", fields["detail"])
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "payment_method", toSnake("PaymentMethod"))
	assert.Equal(t, "email", toSnake("Email"))
	assert.Equal(t, "product_id", toSnake("ProductID"))
}
