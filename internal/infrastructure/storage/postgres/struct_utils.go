package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns lists the "db" tags of T in field order, descending into
// embedded structs such as entity.Document. Repositories call it once at
// construction time.
//
//	cols := ExtractDBColumns[product.Product]()
//	// ["id", "product_number", "name", "unit_of_measure", ...]
func ExtractDBColumns[T any]() []string {
	var zero T
	meta := typeMetadataOf(reflect.TypeOf(zero))
	return meta.columns()
}

// fieldInfo describes one tagged or embedded field.
type fieldInfo struct {
	index    int
	dbTag    string
	embedded reflect.Type
}

// typeMetadata is the cached field layout of a struct type.
type typeMetadata struct {
	fields []fieldInfo
}

func (m *typeMetadata) columns() []string {
	var cols []string
	for _, f := range m.fields {
		if f.embedded != nil {
			cols = append(cols, typeMetadataOf(f.embedded).columns()...)
			continue
		}
		cols = append(cols, f.dbTag)
	}
	return cols
}

var typeCache sync.Map // map[reflect.Type]*typeMetadata

// typeMetadataOf returns the cached layout of t, computing it on first use.
func typeMetadataOf(t reflect.Type) *typeMetadata {
	if t == nil {
		return &typeMetadata{}
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.Anonymous {
				meta.fields = append(meta.fields, fieldInfo{index: i, embedded: field.Type})
				continue
			}
			tag := field.Tag.Get("db")
			if tag == "" || tag == "-" {
				continue
			}
			meta.fields = append(meta.fields, fieldInfo{index: i, dbTag: tag})
		}
	}

	actual, _ := typeCache.LoadOrStore(t, meta)
	return actual.(*typeMetadata)
}

// StructToMap converts a struct (or pointer to one) into column values keyed
// by "db" tag. Fields tagged "-" or untagged are skipped.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	res := make(map[string]any)
	collect(rv, res)
	return res
}

func collect(rv reflect.Value, dst map[string]any) {
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	for _, f := range typeMetadataOf(rv.Type()).fields {
		if f.embedded != nil {
			collect(rv.Field(f.index), dst)
			continue
		}
		dst[f.dbTag] = rv.Field(f.index).Interface()
	}
}
