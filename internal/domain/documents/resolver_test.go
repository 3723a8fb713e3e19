package documents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
)

type staticNames struct {
	names map[id.ID]string
	calls int
	asked []id.ID
}

func (s *staticNames) NamesByID(_ context.Context, ids []id.ID) (map[id.ID]string, error) {
	s.calls++
	s.asked = ids
	out := make(map[id.ID]string)
	for _, pid := range ids {
		if n, ok := s.names[pid]; ok {
			out[pid] = n
		}
	}
	return out, nil
}

func TestResolveLines_SingleLookup(t *testing.T) {
	a, b := id.New(), id.New()
	src := &staticNames{names: map[id.ID]string{a: "Rice", b: "Beans"}}
	r := NewProductResolver(src)

	names, err := r.ResolveLines(context.Background(), []id.ID{a, b, a})
	require.NoError(t, err)
	assert.Equal(t, "Rice", names[a])
	assert.Equal(t, 1, src.calls)
	assert.Len(t, src.asked, 2)
}

func TestResolveLines_UnknownProductNamesLine(t *testing.T) {
	a, ghost := id.New(), id.New()
	r := NewProductResolver(&staticNames{names: map[id.ID]string{a: "Rice"}})

	_, err := r.ResolveLines(context.Background(), []id.ID{a, ghost})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "Product not found", appErr.Message)
	assert.Equal(t, 2, appErr.Details["line"])
	assert.Equal(t, ghost.String(), appErr.Details["productId"])
}

func TestResolveOne(t *testing.T) {
	a := id.New()
	r := NewProductResolver(&staticNames{names: map[id.ID]string{a: "Rice"}})

	name, err := r.ResolveOne(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, "Rice", name)

	_, err = r.ResolveOne(context.Background(), id.New())
	assert.True(t, apperror.IsValidation(err))
}

func TestResolveLines_Empty(t *testing.T) {
	src := &staticNames{}
	names, err := NewProductResolver(src).ResolveLines(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Zero(t, src.calls)
}
