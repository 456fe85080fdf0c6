package cmd

import (
	"context"
	"testing"

	"github.com/ghecrochet/storefront/app/configs"
	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/models/migrations"
	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCreateAdmin(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, migrations.AutoMigrate(db))

	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	require.NoError(t, createAdmin(ctx, users, "Ghẹ", "admin@ghe.vn", "s3cret-pass"))

	user, err := users.FindByEmail(ctx, "admin@ghe.vn")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-pass")))

	assert.Error(t, createAdmin(ctx, users, "Ghẹ", "admin@ghe.vn", "another-pass"))
	assert.Error(t, createAdmin(ctx, users, "Short", "short@ghe.vn", "123"))
}

func TestCliCommands(t *testing.T) {
	var names []string
	for _, c := range NewCli(configs.ENV{}).Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"migrate", "seed", "create-admin", "generate-keys"}, names)
}
