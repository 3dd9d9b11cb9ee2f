package docs

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readDoc(t *testing.T) (swaggerDoc, string) {
	t.Helper()
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc, raw
}

func TestDoc_DefinesSchemas(t *testing.T) {
	doc, _ := readDoc(t)

	for _, name := range []string{
		"dto.ErrorResponse",
		"dto.TeamDTO",
		"request.CreateTeamRequest",
		"request.RespondInvitationRequest",
		"response.ApplicationSwipeResponse",
		"response.InvitationsResponse",
		"response.UserResponse",
	} {
		assert.Contains(t, doc.Definitions, name)
	}

	assert.Contains(t, doc.Paths, "/users/{userID}")
	assert.Contains(t, doc.Paths["/invitations/{invitationID}"], "put")
}

func TestDoc_RefsResolve(t *testing.T) {
	doc, raw := readDoc(t)

	const prefix = `"$ref": "#/definitions/`
	rest := raw
	for {
		i := strings.Index(rest, prefix)
		if i < 0 {
			break
		}
		rest = rest[i+len(prefix):]
		name := rest[:strings.Index(rest, `"`)]
		assert.Contains(t, doc.Definitions, name)
	}
}
