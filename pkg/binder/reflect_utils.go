package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindToStruct binds values to the fields of the struct v points to.
// tagName selects the struct tag holding the parameter name.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		paramName, skip := parseFieldTag(fieldType, tagName)
		if skip {
			continue
		}

		fieldValues, ok := values[paramName]
		if !ok || len(fieldValues) == 0 {
			continue
		}

		if err := setFieldValue(field, fieldType.Type, fieldValues); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, fieldType.Name, err)
		}
	}

	return nil
}

// parseFieldTag returns the parameter name for field and whether to skip it.
func parseFieldTag(field reflect.StructField, tagName string) (string, bool) {
	tag := field.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(field.Name), false
	case "-":
		return "", true
	}

	name, _, _ := strings.Cut(tag, ",")
	return name, name == ""
}

// setFieldValue assigns the first of values to field. Slices take all values.
func setFieldValue(field reflect.Value, fieldType reflect.Type, values []string) error {
	switch fieldType.Kind() {
	case reflect.Ptr:
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), values)

	case reflect.Slice:
		slice := reflect.MakeSlice(fieldType, len(values), len(values))
		for i, value := range values {
			if err := setFieldValue(slice.Index(i), fieldType.Elem(), []string{value}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	value := values[0]

	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Bool:
		switch strings.ToLower(value) {
		case "on", "yes":
			field.SetBool(true)
			return nil
		case "off", "no", "":
			field.SetBool(false)
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", value)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}

	return nil
}
