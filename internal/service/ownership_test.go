package service

import (
	"context"
	"errors"
	"testing"

	"github.com/and161185/medtrack/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
)

func TestOwnershipResolver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newFakeStore()
	r := NewOwnershipResolver(fakeProfiles{st}, fakeMeds{st})

	alice, bob := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	p := model.Profile{ID: uuid.Must(uuid.NewV4()), UserID: alice, Name: "Mom"}
	st.profiles[p.ID] = p
	m := model.Medication{ID: uuid.Must(uuid.NewV4()), ProfileID: p.ID, Name: "Aspirin"}
	st.meds[m.ID] = m
	orphan := model.Medication{ID: uuid.Must(uuid.NewV4()), ProfileID: uuid.Must(uuid.NewV4()), Name: "Lost"}
	st.meds[orphan.ID] = orphan

	ok, err := r.OwnsProfile(ctx, p.ID, alice)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.OwnsProfile(ctx, p.ID, bob)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.OwnsProfile(ctx, uuid.Must(uuid.NewV4()), alice)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.OwnsMedication(ctx, m.ID, alice)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.OwnsMedication(ctx, m.ID, bob)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.OwnsMedication(ctx, orphan.ID, alice)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.OwnsMedication(ctx, uuid.Nil, alice)
	require.NoError(t, err)
	require.False(t, ok)

	st.ownerErr = errors.New("db down")
	_, err = r.OwnsProfile(ctx, p.ID, alice)
	require.Error(t, err)
	_, err = r.OwnsMedication(ctx, m.ID, alice)
	require.Error(t, err)
}
