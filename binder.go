package href

import (
	"errors"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Bind binds the `QueryString` of the u into the v, which must be a pointer
// to a struct or a map.
//
// Struct fields are matched against query keys by their "query" tag, or by
// their names (case insensitively) when the tag is absent. Values are
// weakly typed, so "1" binds into an int and "true" into a bool. A nil query
// value leaves the matching field untouched.
func (u *URL) Bind(v interface{}) error {
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("href: binding element must be a non-nil pointer")
	}

	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "query",
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return err
	}

	return d.Decode(u.query().Map())
}
