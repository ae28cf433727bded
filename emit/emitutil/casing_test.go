package emitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	assert.Equal(t, "GetLogger", ToPascalCase("get_logger"))
	assert.Equal(t, "PaymentProcessor", ToPascalCase("payment_processor"))
	assert.Equal(t, "Validate", ToPascalCase("validate"))
	assert.Equal(t, "ApiV1Auth", ToPascalCase("api.v1.auth"))
	assert.Equal(t, "", ToPascalCase(""))
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "getLogger", ToCamelCase("get_logger"))
	assert.Equal(t, "validate", ToCamelCase("validate"))
	assert.Equal(t, "", ToCamelCase(""))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "get_logger", ToSnakeCase("GetLogger"))
	assert.Equal(t, "https_connection", ToSnakeCase("HTTPSConnection"))
	assert.Equal(t, "validate", ToSnakeCase("validate"))
}
