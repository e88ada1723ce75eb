package kernel_test

import (
	"testing"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.NotEqual(t, uuid.Nil.String(), id1.String())
	assert.False(t, id1.IsEqual(id2))
	assert.True(t, id1.IsEqual(id1))
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "canonical", input: canonical},
		{name: "braces", input: "{550e8400-e29b-41d4-a716-446655440000}"},
		{name: "urn", input: "urn:uuid:550e8400-e29b-41d4-a716-446655440000"},
		{name: "no hyphens", input: "550e8400e29b41d4a716446655440000"},
		{name: "garbage", input: "order-42", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "nil uuid", input: uuid.Nil.String(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		})
	}
}

func TestUUIDFromBytes(t *testing.T) {
	original := kernel.NewUUID()
	raw := original.Bytes()

	restored, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)
	assert.True(t, original.IsEqual(restored))

	_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
	require.Error(t, err)

	_, err = kernel.UUIDFromBytes(make([]byte, 16))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestUUID_ZeroValueIsInvalid(t *testing.T) {
	var id kernel.UUID

	err := id.Validate()

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
