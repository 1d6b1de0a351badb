package apiv1

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The published document must stay valid and keep describing every
// route RegisterHandlers installs.
func TestOpenAPIDocumentMatchesRoutes(t *testing.T) {
	t.Parallel()

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../public/docs/v1/openapi.yml")
	require.NoError(t, err)

	require.NoError(t, doc.Validate(context.Background()))

	wantPaths := []string{
		"/ping",
		"/user/profile",
		"/links",
		"/links/{uuid}",
		"/links/{uuid}/stats",
	}
	for _, p := range wantPaths {
		assert.NotNil(t, doc.Paths.Find(p), "path %s missing from openapi.yml", p)
	}

	linkItem := doc.Paths.Find("/links/{uuid}")
	require.NotNil(t, linkItem)
	assert.NotNil(t, linkItem.Get)
	assert.NotNil(t, linkItem.Patch)
	assert.NotNil(t, linkItem.Delete)

	// Ping must stay key-free so monitors can reach it
	ping := doc.Paths.Find("/ping")
	require.NotNil(t, ping)
	require.NotNil(t, ping.Get)
	require.NotNil(t, ping.Get.Security)
	assert.Len(t, *ping.Get.Security, 0)
}
