package validation

import (
	"reflect"
	"strings"
)

// jsonName reports struct fields by their json name so messages match the
// request body the client sent.
func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
