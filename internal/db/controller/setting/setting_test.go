package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	_, err := Set(db, "a.myshopify.com", `{"primaryColor":"#000000"}`)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		shop          string
		expectedError error
		expectedValue string
	}{
		{
			name:          "nil database",
			shop:          "a.myshopify.com",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty shop",
			dbParam:       db,
			shop:          "  ",
			expectedError: ErrShopEmpty,
		},
		{
			name:          "never saved",
			dbParam:       db,
			shop:          "b.myshopify.com",
			expectedError: ErrSettingNotFound,
		},
		{
			name:          "successful get",
			dbParam:       db,
			shop:          "a.myshopify.com",
			expectedValue: `{"primaryColor":"#000000"}`,
		},
		{
			name:          "shop key is normalized",
			dbParam:       db,
			shop:          "https://A.myshopify.com/",
			expectedValue: `{"primaryColor":"#000000"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Get(tc.dbParam, tc.shop)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, s)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedValue, s.Config)
		})
	}
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	_, err := Set(nil, "a.myshopify.com", "{}")
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Set(db, "", "{}")
	require.ErrorIs(t, err, ErrShopEmpty)

	_, err = Set(db, "a.myshopify.com", "")
	require.ErrorIs(t, err, ErrConfigEmpty)

	first, err := Set(db, "a.myshopify.com", `{"v":1}`)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, first.Config)

	second, err := Set(db, "a.myshopify.com/", `{"v":2}`)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, second.Config)
	assert.Equal(t, first.ID, second.ID, "settings are replaced, not duplicated")

	_, err = Set(db, "b.myshopify.com", `{"v":3}`)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	stored, err := Get(db, "a.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, stored.Config)
}
