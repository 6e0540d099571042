package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		// ARRANGE
		path := writeFile(t, "db.yaml", `
connectionStrings:
  Reports:
    connectionString: "sqlserver://reporter@db/reports"
    providerName: sqlserver
  Local:
    connectionString: local.db
`)

		// ACT
		cs, err := Load(path)

		// ASSERT
		require.NoError(t, err)

		c, ok := cs.Lookup("Reports")
		require.True(t, ok)
		assert.Equal(t, "sqlserver://reporter@db/reports", c.ConnectionString())
		assert.Equal(t, "sqlserver", c.ProviderName())

		c, ok = cs.Lookup("local")
		require.True(t, ok)
		assert.Equal(t, "local.db", c.ConnectionString())
		assert.Equal(t, "", c.ProviderName())

		_, ok = cs.Lookup("other")
		assert.False(t, ok)
	})

	t.Run("json", func(t *testing.T) {
		// ARRANGE
		path := writeFile(t, "db.json", `{"connectionStrings": {"orders": {"connectionString": "orders-dsn", "providerName": "mysql"}}}`)

		// ACT
		cs, err := Load(path)

		// ASSERT
		require.NoError(t, err)
		c, ok := cs.Lookup("orders")
		require.True(t, ok)
		assert.Equal(t, "mysql", c.ProviderName())
	})

	t.Run("missing connection string", func(t *testing.T) {
		// ARRANGE
		path := writeFile(t, "db.yaml", `
connectionStrings:
  reports:
    providerName: sqlserver
`)

		// ACT
		_, err := Load(path)

		// ASSERT
		assert.ErrorContains(t, err, "reports")
	})

	t.Run("missing file", func(t *testing.T) {
		// ACT
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// ASSERT
		assert.Error(t, err)
	})
}

func TestFromEnv(t *testing.T) {
	t.Run("entries", func(t *testing.T) {
		// ARRANGE
		t.Setenv("DBCFGTEST_REPORTS__CONNECTIONSTRING", "sqlserver://reporter@db/reports")
		t.Setenv("DBCFGTEST_REPORTS__PROVIDERNAME", "sqlserver")
		t.Setenv("DBCFGTEST_LOCAL__CONNECTIONSTRING", "local.db")

		// ACT
		cs, err := FromEnv("DBCFGTEST_")

		// ASSERT
		require.NoError(t, err)
		assert.Len(t, cs, 2)

		c, ok := cs.Lookup("Reports")
		require.True(t, ok)
		assert.Equal(t, "sqlserver://reporter@db/reports", c.ConnectionString())
		assert.Equal(t, "sqlserver", c.ProviderName())
	})

	t.Run("ignores variables that are not entries", func(t *testing.T) {
		// ARRANGE
		t.Setenv("DBCFGTEST4_REPORTS__CONNECTIONSTRING", "reports-dsn")
		t.Setenv("DBCFGTEST4_ENV", "production")

		// ACT
		cs, err := FromEnv("DBCFGTEST4_")

		// ASSERT
		require.NoError(t, err)
		assert.Len(t, cs, 1)

		c, ok := cs.Lookup("reports")
		require.True(t, ok)
		assert.Equal(t, "reports-dsn", c.ConnectionString())
	})

	t.Run("missing connection string", func(t *testing.T) {
		// ARRANGE
		t.Setenv("DBCFGTEST2_REPORTS__PROVIDERNAME", "sqlserver")

		// ACT
		_, err := FromEnv("DBCFGTEST2_")

		// ASSERT
		assert.ErrorContains(t, err, "reports")
	})
}

func TestFromDotEnv(t *testing.T) {
	t.Run("entries", func(t *testing.T) {
		// ARRANGE
		path := writeFile(t, "test.env", "DBCFGTEST3_ORDERS__CONNECTIONSTRING=orders-dsn\nDBCFGTEST3_ORDERS__PROVIDERNAME=mysql\n")
		t.Cleanup(func() {
			_ = os.Unsetenv("DBCFGTEST3_ORDERS__CONNECTIONSTRING")
			_ = os.Unsetenv("DBCFGTEST3_ORDERS__PROVIDERNAME")
		})

		// ACT
		cs, err := FromDotEnv("DBCFGTEST3_", path)

		// ASSERT
		require.NoError(t, err)
		c, ok := cs.Lookup("ORDERS")
		require.True(t, ok)
		assert.Equal(t, "orders-dsn", c.ConnectionString())
		assert.Equal(t, "mysql", c.ProviderName())
	})

	t.Run("missing file", func(t *testing.T) {
		// ACT
		_, err := FromDotEnv("DBCFGTEST3_", filepath.Join(t.TempDir(), "missing.env"))

		// ASSERT
		assert.Error(t, err)
	})
}
