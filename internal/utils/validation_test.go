package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidCPF(t *testing.T) {
	assert.True(t, IsValidCPF("529.982.247-25"))
	assert.True(t, IsValidCPF("52998224725"))
	assert.False(t, IsValidCPF("529.982.247-26"))
	assert.False(t, IsValidCPF("111.111.111-11"))
	assert.False(t, IsValidCPF("1234567890"))
	assert.False(t, IsValidCPF(""))
}

func TestIsValidCNPJ(t *testing.T) {
	assert.True(t, IsValidCNPJ("11.222.333/0001-81"))
	assert.True(t, IsValidCNPJ("11222333000181"))
	assert.False(t, IsValidCNPJ("11.222.333/0001-82"))
	assert.False(t, IsValidCNPJ("00000000000000"))
	assert.False(t, IsValidCNPJ("1122233300018"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("(11) 3333-4444"))
	assert.True(t, IsValidPhone("11999998888"))
	assert.False(t, IsValidPhone("999998888"))
	assert.False(t, IsValidPhone("119999988887"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("abc123"))
	assert.False(t, IsValidPassword("ab12"))
	assert.False(t, IsValidPassword("ABCDEF1"))
	assert.False(t, IsValidPassword("abcdefg"))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "01310-100", FormatZipCode("01310100"))
	assert.Equal(t, "0131", FormatZipCode("0131"))
	assert.Equal(t, "(11) 3333-4444", FormatPhone("1133334444"))
	assert.Equal(t, "(11) 99999-8888", FormatPhone("11999998888"))
	assert.Equal(t, "123", FormatPhone("123"))
	assert.Equal(t, "529.982.247-25", FormatCPF("52998224725"))
	assert.Equal(t, "11.222.333/0001-81", FormatCNPJ("11222333000181"))
	assert.Equal(t, "11222333000181", OnlyDigits("11.222.333/0001-81"))
}

func TestValidatorCustomTags(t *testing.T) {
	InitValidator()

	type payload struct {
		CPF   string `validate:"omitempty,cpf"`
		CNPJ  string `validate:"omitempty,cnpj"`
		Phone string `validate:"phone_br"`
		Zip   string `validate:"zipcode_br"`
		Open  string `validate:"hhmm"`
		Pass  string `validate:"password"`
	}

	require.NoError(t, Validate.Struct(payload{
		CPF:   "529.982.247-25",
		Phone: "11999998888",
		Zip:   "01310-100",
		Open:  "08:30",
		Pass:  "senha1",
	}))

	assert.Error(t, Validate.Struct(payload{
		CPF:   "529.982.247-25",
		Phone: "11999998888",
		Zip:   "01310-100",
		Open:  "8h30",
		Pass:  "senha1",
	}))
	assert.Error(t, Validate.Struct(payload{
		CNPJ:  "11.222.333/0001-82",
		Phone: "11999998888",
		Zip:   "01310-100",
		Open:  "08:30",
		Pass:  "senha1",
	}))
}
