package errors

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerFieldNames sync.Once

// makes gin's validator report fields under the name the client sent, so
// violations read "age value:-1 is not valid" rather than "Age ..."
func UseWireFieldNames() {
	registerFieldNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(WireFieldName)
		}
	})
}

// returns the json name of a struct field, then its form name; empty falls
// back to the Go field name
func WireFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}
