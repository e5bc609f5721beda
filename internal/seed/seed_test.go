package seed

import (
	"testing"

	"pinboard/internal/database"
	"pinboard/internal/models"
	"pinboard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRun(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 5, NumPosts: 10}))

	var userCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.EqualValues(t, 5, userCount)
	assert.EqualValues(t, 10, postCount)

	// Seeded accounts must satisfy the signup rules.
	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	for _, u := range users {
		assert.NoError(t, validation.ValidateNickname(u.Nickname), u.Nickname)
		assert.NotEqual(t, "1234", u.Password, "password must be stored hashed")
	}

	// No duplicate likes on any (post, user) pair.
	var dupes int64
	require.NoError(t, db.Raw(
		`SELECT COUNT(*) FROM (
			SELECT post_id, user_id FROM likes
			GROUP BY post_id, user_id HAVING COUNT(*) > 1
		) d`).Scan(&dupes).Error)
	assert.Zero(t, dupes)
}

func TestClean(t *testing.T) {
	db := setupSeedDB(t)
	require.NoError(t, Run(db, Options{NumUsers: 3, NumPosts: 5}))
	require.NoError(t, Clean(db))

	for _, model := range []interface{}{
		&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{},
	} {
		var count int64
		require.NoError(t, db.Unscoped().Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}
