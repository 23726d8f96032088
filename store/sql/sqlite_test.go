package sql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aloks98/tasktracker/internal/testutil"
	"github.com/aloks98/tasktracker/store"
	sqlstore "github.com/aloks98/tasktracker/store/sql"
	"github.com/aloks98/tasktracker/store/storetest"
)

func TestSQLite_Contract(t *testing.T) {
	storetest.Run(t, testutil.SetupSQLite(t))
}

func TestSQLite_TablePrefix(t *testing.T) {
	storetest.Run(t, testutil.SetupSQLiteWithPrefix(t, "tt_"))
}

func TestSQLite_MigrateIsIdempotent(t *testing.T) {
	s := testutil.SetupSQLite(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestSQLite_ForeignKeyOnTasks(t *testing.T) {
	s := testutil.SetupSQLite(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback() //nolint:errcheck

	err = sess.InsertTask(ctx, &store.Task{Title: "orphan", Status: "pending", UserID: 4242})
	require.Error(t, err)
	require.False(t, errors.Is(err, store.ErrDuplicate))
}

func TestSQLite_Dialect(t *testing.T) {
	s := testutil.SetupSQLite(t)
	require.Equal(t, sqlstore.SQLite, s.Dialect())
	require.NotNil(t, s.DB())
	require.Equal(t, 1, s.DB().Stats().MaxOpenConnections)
}
