package postgres

import (
	"fmt"
	"reflect"
	"strings"
)

// StructToMap flattens a struct into column name -> value pairs using
// `db` tags. Embedded structs are walked recursively; fields without a
// db tag are skipped.
func StructToMap(entity any) (map[string]any, error) {
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("cannot map nil pointer")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct, got %s", v.Kind())
	}

	result := make(map[string]any)
	collectFields(v, result)
	return result, nil
}

func collectFields(v reflect.Value, out map[string]any) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		value := v.Field(i)
		if field.Anonymous {
			embedded := value
			for embedded.Kind() == reflect.Pointer && !embedded.IsNil() {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				collectFields(embedded, out)
				continue
			}
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		column := strings.Split(tag, ",")[0]
		out[column] = value.Interface()
	}
}

// ExtractDBColumns lists the db-tagged column names of a struct type
// in declaration order, embedded fields first.
func ExtractDBColumns(entity any) []string {
	t := reflect.TypeOf(entity)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var columns []string
	collectColumns(t, &columns)
	return columns
}

func collectColumns(t reflect.Type, out *[]string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if field.Anonymous {
			embedded := field.Type
			for embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				collectColumns(embedded, out)
				continue
			}
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		*out = append(*out, strings.Split(tag, ",")[0])
	}
}
