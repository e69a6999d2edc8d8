package ssz

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// fieldRef is one exported, non-blank struct field together with its
// struct tag, after anonymous (embedded) structs have been flattened.
type fieldRef struct {
	value reflect.Value
	tag   reflect.StructTag
	name  string
}

func collectFields(v reflect.Value) ([]fieldRef, error) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v = reflect.New(v.Type().Elem()).Elem()
		} else {
			v = v.Elem()
		}
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.Errorf("ssz: expected struct, got %s", v.Kind())
	}

	var out []fieldRef
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" || strings.HasPrefix(field.Name, "_") {
			continue
		}
		fv := v.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, err := collectFields(fv)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}
		out = append(out, fieldRef{value: fv, tag: field.Tag, name: field.Name})
	}
	return out, nil
}

// fieldTypeRef is the type-only counterpart of fieldRef, used by the
// classifier where no value is available yet.
type fieldTypeRef struct {
	typ  reflect.Type
	tag  reflect.StructTag
	name string
}

func collectFieldTypes(t reflect.Type) ([]fieldTypeRef, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Errorf("ssz: expected struct, got %s", t.Kind())
	}
	var out []fieldTypeRef
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" || strings.HasPrefix(field.Name, "_") {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, err := collectFieldTypes(field.Type)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}
		out = append(out, fieldTypeRef{typ: field.Type, tag: field.Tag, name: field.Name})
	}
	return out, nil
}
