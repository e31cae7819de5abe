package validation

import (
	"fmt"
	"strings"
)

// FieldGetter is satisfied by models.SourceRecord and by landing records
// exposing their values by column name.
type FieldGetter interface {
	Get(key string) string
}

// ValidateMandatoryFields returns one "Missing mandatory field: {name}"
// message per absent or blank field, in the order of fieldNames.
func ValidateMandatoryFields(record FieldGetter, fieldNames ...string) []string {
	var messages []string
	for _, name := range fieldNames {
		if strings.TrimSpace(record.Get(name)) == "" {
			messages = append(messages, fmt.Sprintf("Missing mandatory field: %s", name))
		}
	}
	return messages
}

// Fields adapts a plain map to FieldGetter.
type Fields map[string]string

func (f Fields) Get(key string) string {
	return f[key]
}
