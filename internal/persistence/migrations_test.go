package persistence

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pawup/shelter-api/migrations"
)

type fakeRunner struct {
	upErr   error
	version uint
	dirty   bool
	upCalls int
	closed  bool
}

func (f *fakeRunner) Up() error {
	f.upCalls++
	if f.upErr == nil {
		f.version = 3
	}
	return f.upErr
}

func (f *fakeRunner) Version() (uint, bool, error) {
	if f.version == 0 {
		return 0, false, migrate.ErrNilVersion
	}
	return f.version, f.dirty, nil
}

func (f *fakeRunner) Close() (error, error) {
	f.closed = true
	return nil, nil
}

func TestMigratorUp(t *testing.T) {
	runner := &fakeRunner{version: 1}
	m := &Migrator{m: runner, logger: zap.NewNop()}

	require.NoError(t, m.Up())
	assert.Equal(t, 1, runner.upCalls)
}

func TestMigratorUpNoChange(t *testing.T) {
	m := &Migrator{m: &fakeRunner{upErr: migrate.ErrNoChange, version: 3}, logger: zap.NewNop()}
	assert.NoError(t, m.Up())
}

func TestMigratorUpFreshDatabase(t *testing.T) {
	runner := &fakeRunner{}
	m := &Migrator{m: runner, logger: zap.NewNop()}

	require.NoError(t, m.Up())
	assert.Equal(t, 1, runner.upCalls)
	assert.Equal(t, uint(3), runner.version)
}

func TestMigratorUpRefusesDirtySchema(t *testing.T) {
	runner := &fakeRunner{version: 2, dirty: true}
	m := &Migrator{m: runner, logger: zap.NewNop()}

	require.ErrorIs(t, m.Up(), ErrDirtySchema)
	assert.Zero(t, runner.upCalls)
}

func TestMigratorUpFailure(t *testing.T) {
	boom := errors.New("syntax error at or near")
	m := &Migrator{m: &fakeRunner{upErr: boom, version: 1}, logger: zap.NewNop()}

	require.ErrorIs(t, m.Up(), boom)
}

func TestMigratorClose(t *testing.T) {
	runner := &fakeRunner{}
	m := &Migrator{m: runner, logger: zap.NewNop()}

	require.NoError(t, m.Close())
	assert.True(t, runner.closed)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)

	count := 0
	for {
		count++
		up, _, err := src.ReadUp(version)
		require.NoError(t, err, "version %d up", version)
		_ = up.Close()
		down, _, err := src.ReadDown(version)
		require.NoError(t, err, "version %d down", version)
		_ = down.Close()

		version, err = src.Next(version)
		if err != nil {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/pawup", migrateURL("postgres://u:p@db:5432/pawup"))
	assert.Equal(t, "pgx5://db/pawup", migrateURL("postgresql://db/pawup"))
	assert.Equal(t, "pgx5://db/pawup", migrateURL("pgx5://db/pawup"))
}
