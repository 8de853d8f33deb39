// internal/store/store_test.go
package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/merchio-backend/internal/models"
)

// StoreContractSuite runs the same read/write contract against every backend
// that can be built without external services.
type StoreContractSuite struct {
	suite.Suite
	newStore func(t *testing.T) Store
	store    Store
}

func (s *StoreContractSuite) SetupTest() {
	s.store = s.newStore(s.T())
}

func (s *StoreContractSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func (s *StoreContractSuite) TestMissingKey() {
	_, err := s.store.Read(context.Background(), "merchio_products")
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreContractSuite) TestWriteThenRead() {
	ctx := context.Background()
	s.Require().NoError(s.store.Write(ctx, "merchio_products", []byte(`[{"id":"a"}]`)))

	data, err := s.store.Read(ctx, "merchio_products")
	s.Require().NoError(err)
	s.Equal(`[{"id":"a"}]`, string(data))
}

func (s *StoreContractSuite) TestOverwriteReplacesWholeValue() {
	ctx := context.Background()
	s.Require().NoError(s.store.Write(ctx, "merchio_reviews", []byte(`[1,2,3]`)))
	s.Require().NoError(s.store.Write(ctx, "merchio_reviews", []byte(`[]`)))

	data, err := s.store.Read(ctx, "merchio_reviews")
	s.Require().NoError(err)
	s.Equal(`[]`, string(data))
}

func (s *StoreContractSuite) TestKeysAreIndependent() {
	ctx := context.Background()
	s.Require().NoError(s.store.Write(ctx, "merchio_products", []byte(`"p"`)))
	s.Require().NoError(s.store.Write(ctx, "merchio_favorites", []byte(`"f"`)))

	p, err := s.store.Read(ctx, "merchio_products")
	s.Require().NoError(err)
	f, err := s.store.Read(ctx, "merchio_favorites")
	s.Require().NoError(err)

	s.Equal(`"p"`, string(p))
	s.Equal(`"f"`, string(f))
}

func TestMemoryStoreContract(t *testing.T) {
	suite.Run(t, &StoreContractSuite{newStore: func(t *testing.T) Store {
		return NewMemoryStore()
	}})
}

func TestFileStoreContract(t *testing.T) {
	suite.Run(t, &StoreContractSuite{newStore: func(t *testing.T) Store {
		fs, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		return fs
	}})
}

func TestGormStoreContract(t *testing.T) {
	suite.Run(t, &StoreContractSuite{newStore: func(t *testing.T) Store {
		db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kv.db")), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		require.NoError(t, err)
		require.NoError(t, db.AutoMigrate(&models.KVEntry{}))
		return NewGormStore(db)
	}})
}

func TestPrefixedStoreContract(t *testing.T) {
	suite.Run(t, &StoreContractSuite{newStore: func(t *testing.T) Store {
		return WithPrefix(NewMemoryStore(), "tenant_a:")
	}})
}

func TestWithPrefixNamespacesKeys(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryStore()
	a := WithPrefix(base, "a:")
	b := WithPrefix(base, "b:")

	require.NoError(t, a.Write(ctx, "merchio_products", []byte("A")))
	require.NoError(t, b.Write(ctx, "merchio_products", []byte("B")))

	raw, err := base.Read(ctx, "a:merchio_products")
	require.NoError(t, err)
	assert.Equal(t, "A", string(raw))

	got, err := b.Read(ctx, "merchio_products")
	require.NoError(t, err)
	assert.Equal(t, "B", string(got))

	assert.Same(t, base, WithPrefix(base, ""))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, m.Write(ctx, "k", value))
	value[0] = 'z'

	got, err := m.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := m.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "../escape", `a\b`, "nested/key"} {
		_, err := fs.Read(context.Background(), key)
		assert.Error(t, err, key)
		assert.NotErrorIs(t, err, ErrNotFound, key)
		assert.Error(t, fs.Write(context.Background(), key, []byte("x")), key)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	fs, err := NewFileStore(root)
	require.NoError(t, err)

	require.NoError(t, fs.Write(context.Background(), "merchio_products", []byte("[]")))
	require.NoError(t, fs.Write(context.Background(), "merchio_products", []byte("[1]")))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "merchio_products.json", entries[0].Name())
}
