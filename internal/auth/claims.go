package auth

import (
	"fmt"
	"strings"
)

const (
	claimID     = "id"
	claimAccess = "access"
)

// ClaimSchema fixes the name under which the identifying attribute travels in
// tokens and introspection output. It is chosen once per deployment.
type ClaimSchema struct {
	IdentifierField string
}

var (
	SchemaEmail    = ClaimSchema{IdentifierField: "email"}
	SchemaUsername = ClaimSchema{IdentifierField: "username"}
)

// ParseClaimSchema resolves a configured schema name.
func ParseClaimSchema(name string) (ClaimSchema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SchemaEmail.IdentifierField:
		return SchemaEmail, nil
	case SchemaUsername.IdentifierField:
		return SchemaUsername, nil
	default:
		return ClaimSchema{}, fmt.Errorf("unsupported claim identifier %q", name)
	}
}

// Identity is the claim set carried by a token.
type Identity struct {
	ID         string
	Identifier string
	Access     string
}

// Fields renders the identity using the schema's field names.
func (i Identity) Fields(schema ClaimSchema) map[string]string {
	return map[string]string{
		claimID:                i.ID,
		schema.IdentifierField: i.Identifier,
		claimAccess:            i.Access,
	}
}

func (i Identity) complete() bool {
	return i.ID != "" && i.Access != ""
}
