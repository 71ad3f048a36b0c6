package db

import (
	"context"
	"testing"

	"github.com/roamvista/roamvista/internal/account"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestProfileFieldColumns(t *testing.T) {
	t.Parallel()

	// The account.Field keys are forwarded to gorm Updates as column names;
	// they must match what the naming strategy derives from the user model.
	naming := schema.NamingStrategy{}
	require.Equal(t, account.FieldDisplayName, naming.ColumnName("users", "DisplayName"))
	require.Equal(t, account.FieldAvatarURL, naming.ColumnName("users", "AvatarURL"))
	require.Equal(t, account.FieldEmail, naming.ColumnName("users", "Email"))
}

func TestUpdateProfileRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	var store Store
	err := store.UpdateProfile(context.Background(), uuid.New(), map[string]interface{}{
		"displayName": "Jane",
	})
	require.Error(t, err)
}
