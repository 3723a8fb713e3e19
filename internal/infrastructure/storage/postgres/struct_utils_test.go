package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockbook/internal/core/entity"
)

type testDocument struct {
	entity.Document
	Supplier string  `db:"supplier"`
	Notes    *string `db:"notes"`
	Derived  string  `db:"-"`
	Scratch  int
}

func TestExtractDBColumns_EmbeddedFirst(t *testing.T) {
	cols := ExtractDBColumns[testDocument]()

	assert.Equal(t, []string{"id", "date", "registered_at", "supplier", "notes"}, cols)
}

func TestExtractDBColumns_Pointer(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[testDocument](), ExtractDBColumns[*testDocument]())
}

func TestStructToMap(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	doc := &testDocument{
		Document: entity.NewDocument(date),
		Supplier: "Acme",
		Derived:  "skip",
	}

	m := StructToMap(doc)

	assert.Len(t, m, 5)
	assert.Equal(t, doc.ID, m["id"])
	assert.Equal(t, date, m["date"])
	assert.Equal(t, "Acme", m["supplier"])
	assert.Nil(t, m["notes"])
	assert.NotContains(t, m, "Derived")
}

func TestStructToMap_NotAStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))

	var nilDoc *testDocument
	assert.Nil(t, StructToMap(nilDoc))
}
