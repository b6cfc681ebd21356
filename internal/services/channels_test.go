package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/pelican/internal/permissions"
	"github.com/thereayou/pelican/pkg/apperrors"
)

func TestCreateChannel(t *testing.T) {
	db := newTestDB(t)
	svc := NewChannelService(db)
	user := createTestUser(t, db, "alice")

	channel, err := svc.Create(user.ID, "general", "General", "group", true)
	require.NoError(t, err)
	assert.Equal(t, "general", channel.Name)
	assert.Equal(t, user.ID, channel.OwnerID)

	// Создатель сразу участник с правами владельца
	member, err := svc.GetMember(channel.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, permissions.HasAll(member.Permissions, permissions.Admin, permissions.ManageMessages))
}

func TestCreateChannelDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := NewChannelService(db)
	user := createTestUser(t, db, "alice")

	_, err := svc.Create(user.ID, "general", "General", "group", true)
	require.NoError(t, err)

	_, err = svc.Create(user.ID, "general", "Another", "group", false)
	assert.ErrorIs(t, err, apperrors.ErrChannelAlreadyExists)
}

func TestJoinChannel(t *testing.T) {
	db := newTestDB(t)
	svc := NewChannelService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	channel, err := svc.Create(alice.ID, "general", "General", "group", true)
	require.NoError(t, err)

	member, err := svc.Join(channel.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, permissions.DefaultMember, member.Permissions)

	got, err := svc.GetMember(channel.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, got.ID)

	// Повторный join того же пользователя
	_, err = svc.Join(channel.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrMemberAlreadyExists)
}

func TestJoinDeletedChannel(t *testing.T) {
	db := newTestDB(t)
	svc := NewChannelService(db)
	user := createTestUser(t, db, "alice")

	_, err := svc.Join(uuid.New(), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrChannelNotFound)
}

func TestLeaveChannel(t *testing.T) {
	db := newTestDB(t)
	svc := NewChannelService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	channel, err := svc.Create(alice.ID, "general", "General", "group", true)
	require.NoError(t, err)

	_, err = svc.Join(channel.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(channel.ID, bob.ID))

	_, err = svc.GetMember(channel.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)

	// Выходить больше не из чего
	assert.ErrorIs(t, svc.Leave(channel.ID, bob.ID), apperrors.ErrMemberNotFound)
}

func TestListMembersInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewChannelService(db)
	alice := createTestUser(t, db, "alice")

	channel, err := svc.Create(alice.ID, "general", "General", "group", true)
	require.NoError(t, err)

	var joined []uuid.UUID
	joined = append(joined, alice.ID)
	for _, name := range []string{"bob", "carol", "dave"} {
		user := createTestUser(t, db, name)
		_, err := svc.Join(channel.ID, user.ID)
		require.NoError(t, err)
		joined = append(joined, user.ID)
	}

	members, err := svc.ListMembers(channel.ID)
	require.NoError(t, err)
	require.Len(t, members, len(joined))
	for i, member := range members {
		assert.Equal(t, joined[i], member.UserID)
	}
}

func TestEditChannelPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewChannelService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	channel, err := svc.Create(alice.ID, "general", "General", "group", true)
	require.NoError(t, err)

	bobMember, err := svc.Join(channel.ID, bob.ID)
	require.NoError(t, err)

	newName := "renamed"
	_, err = svc.Edit(bobMember, channel, ChannelEdit{Name: &newName})
	assert.ErrorIs(t, err, apperrors.ErrMissingPermissions)

	owner, err := svc.GetMember(channel.ID, alice.ID)
	require.NoError(t, err)

	updated, err := svc.Edit(owner, channel, ChannelEdit{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	got, err := svc.GetByName("renamed")
	require.NoError(t, err)
	assert.Equal(t, channel.ID, got.ID)
}

func TestDeleteChannelCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewChannelService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	channel, err := svc.Create(alice.ID, "general", "General", "group", true)
	require.NoError(t, err)
	_, err = svc.Join(channel.ID, bob.ID)
	require.NoError(t, err)

	owner, err := svc.GetMember(channel.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(owner, channel))

	_, err = svc.GetByID(channel.ID)
	assert.ErrorIs(t, err, apperrors.ErrChannelNotFound)

	_, err = svc.GetMember(channel.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)
}

func TestDeleteChannelRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewChannelService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	channel, err := svc.Create(alice.ID, "general", "General", "group", true)
	require.NoError(t, err)

	bobMember, err := svc.Join(channel.ID, bob.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(bobMember, channel), apperrors.ErrMissingPermissions)
}
