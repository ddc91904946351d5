package services

import (
	"context"
	"testing"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/fincaforms/fincaforms/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemorySchemas(t *testing.T, emails ...string) *SchemaService {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	acc := NewAccountService(nil, rm)
	for _, e := range emails {
		_, err := acc.CreateAccount(context.Background(), e, "h", Profile{})
		require.NoError(t, err)
	}
	return NewSchemaService(nil, rm)
}

func TestSchemaService_GetSchema_FreshAccountIsEmpty(t *testing.T) {
	s := newMemorySchemas(t, "a@x")

	schema, err := s.GetSchema(context.Background(), "a@x")
	require.NoError(t, err)
	assert.NotNil(t, schema)
	assert.Empty(t, schema)
}

func TestSchemaService_GetSchema_NotFound(t *testing.T) {
	s := newMemorySchemas(t)
	_, err := s.GetSchema(context.Background(), "missing@x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSchemaService_MergeSchema(t *testing.T) {
	ctx := context.Background()
	s := newMemorySchemas(t, "a@x")

	got, err := s.MergeSchema(ctx, "a@x", fields.Map{"cropType": fields.String("text")})
	require.NoError(t, err)
	assert.True(t, got.Equal(fields.Map{"cropType": fields.String("text")}))

	got, err = s.MergeSchema(ctx, "a@x", fields.Map{"area": fields.String("number")})
	require.NoError(t, err)
	want := fields.Map{
		"cropType": fields.String("text"),
		"area":     fields.String("number"),
	}
	assert.True(t, got.Equal(want), "got %v", got.Keys())

	got, err = s.MergeSchema(ctx, "a@x", fields.Map{"area": fields.String("decimal")})
	require.NoError(t, err)
	want["area"] = fields.String("decimal")
	assert.True(t, got.Equal(want))

	stored, err := s.GetSchema(ctx, "a@x")
	require.NoError(t, err)
	assert.True(t, stored.Equal(want))
}

func TestSchemaService_MergeSchema_EmptyPartialIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newMemorySchemas(t, "a@x")

	_, err := s.MergeSchema(ctx, "a@x", fields.Map{"k": fields.Bool(true)})
	require.NoError(t, err)

	got, err := s.MergeSchema(ctx, "a@x", fields.Map{})
	require.NoError(t, err)
	assert.True(t, got.Equal(fields.Map{"k": fields.Bool(true)}))
}

func TestSchemaService_MergeSchema_NestedValueReplacedWhole(t *testing.T) {
	ctx := context.Background()
	s := newMemorySchemas(t, "a@x")

	_, err := s.MergeSchema(ctx, "a@x", fields.Map{
		"plot": fields.MapOf(fields.Map{"type": fields.String("text"), "required": fields.Bool(true)}),
	})
	require.NoError(t, err)

	got, err := s.MergeSchema(ctx, "a@x", fields.Map{
		"plot": fields.MapOf(fields.Map{"type": fields.String("number")}),
	})
	require.NoError(t, err)

	plot, ok := got["plot"].AsMap()
	require.True(t, ok)
	assert.Equal(t, []string{"type"}, plot.Keys())
}

func TestSchemaService_MergeSchema_NotFound(t *testing.T) {
	s := newMemorySchemas(t)
	_, err := s.MergeSchema(context.Background(), "missing@x", fields.Map{"a": fields.Null()})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSchemaService_MergeSchema_AccountRemovedBeforeWrite(t *testing.T) {
	rm := vanishingRepoMgr{account: &models.Account{ID: "acc-1", Email: "a@x"}}
	s := NewSchemaService(nil, rm)

	_, err := s.MergeSchema(context.Background(), "a@x", fields.Map{"a": fields.Null()})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NotErrorIs(t, err, common.ErrorStoreUnavailable)
}

func TestSchemaService_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	s := NewSchemaService(nil, brokenRepoMgr{})

	_, err := s.GetSchema(ctx, "a@x")
	assert.ErrorIs(t, err, common.ErrorStoreUnavailable)

	_, err = s.MergeSchema(ctx, "a@x", fields.Map{})
	assert.ErrorIs(t, err, common.ErrorStoreUnavailable)
}
