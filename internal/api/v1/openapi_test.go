package apiv1

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The served OpenAPI document has to stay loadable and internally
// consistent, and describe the routes RegisterHandlers mounts.
func TestOpenAPIDocumentIsValid(t *testing.T) {
	t.Parallel()

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../public/docs/v1/openapi.yml")
	require.NoError(t, err)

	require.NoError(t, doc.Validate(context.Background()))

	assert.NotNil(t, doc.Paths.Find("/ping"))
	assert.NotNil(t, doc.Paths.Find("/letters/{id}/status"))

	status := doc.Paths.Find("/letters/{id}/status")
	require.NotNil(t, status.Get)
	assert.Equal(t, "getLetterStatus", status.Get.OperationID)
}
