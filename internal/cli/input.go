package cli

import (
	"strings"

	"github.com/matzehuels/erdiagram/pkg/errors"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// parseAttribute reads "name[:type]". The type is matched
// case-insensitively and defaults to NORMAL.
func parseAttribute(s string) (model.Attribute, error) {
	name, typ, _ := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Attribute{}, errors.New(errors.ErrCodeInvalidInput, "attribute name cannot be empty")
	}
	t := model.Normal
	if typ = strings.TrimSpace(typ); typ != "" {
		t = model.AttributeType(strings.ToUpper(typ))
		if !t.Valid() {
			return model.Attribute{}, errors.New(errors.ErrCodeInvalidInput, "unknown attribute type %q", typ)
		}
	}
	return model.NewAttribute("", name, t), nil
}

// parseCardinality accepts a cardinality name such as "one_many" or its
// label such as "(1,N)".
func parseCardinality(s string) (model.Cardinality, bool) {
	c := model.Cardinality(strings.ToUpper(s))
	if c.Valid() {
		return c, true
	}
	for _, c := range model.Cardinalities {
		if strings.EqualFold(c.Label(), s) {
			return c, true
		}
	}
	return "", false
}

// parseConnection reads "entity [cardinality]". The cardinality defaults
// to MANY.
func parseConnection(s string) (string, model.Cardinality, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "entity cannot be empty")
	}
	if i := strings.LastIndexByte(s, ' '); i > 0 {
		if c, ok := parseCardinality(s[i+1:]); ok {
			return strings.TrimSpace(s[:i]), c, nil
		}
	}
	return s, model.Many, nil
}

// findEntity resolves ref as an entity id, then as a case-insensitive
// name.
func findEntity(d model.Diagram, ref string) (model.Entity, error) {
	if e, ok := d.Entity(ref); ok {
		return e, nil
	}
	var matches []model.Entity
	for _, e := range d.Entities {
		if strings.EqualFold(e.Name, ref) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return model.Entity{}, errors.New(errors.ErrCodeNotFound, "no entity %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Entity{}, errors.New(errors.ErrCodeInvalidInput, "%d entities are named %q, use an id", len(matches), ref)
	}
}
