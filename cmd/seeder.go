package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth"
	departmentDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/department"
	"github.com/frahmantamala/planforge/internal/core/store"
	"github.com/frahmantamala/planforge/internal/department"
	"github.com/frahmantamala/planforge/internal/user"
	userPostgres "github.com/frahmantamala/planforge/internal/user/postgres"
	"github.com/frahmantamala/planforge/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a department and one account per administrative role for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		initLogger(cfg)

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		gdb, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		hasher := auth.NewPasswordHasher(cfg.Security.BCryptCost)
		if err := seedDatabase(cmd.Context(), gdb, hasher, logger.LoggerWrapper()); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
	},
}

const seedDepartmentCode = "OPS"

type seedAccount struct {
	Name       string
	Email      string
	Password   string
	Role       internal.Role
	Department bool
}

var seedAccounts = []seedAccount{
	{Name: "Super Admin", Email: "superadmin@planforge.com", Password: "super123", Role: internal.RoleSuperAdmin},
	{Name: "Admin", Email: "admin@planforge.com", Password: "admin123", Role: internal.RoleAdmin},
	{Name: "Creator", Email: "creator@planforge.com", Password: "creator123", Role: internal.RoleCreator, Department: true},
}

// seedDatabase is idempotent: existing departments and accounts are kept.
func seedDatabase(ctx context.Context, gdb *gorm.DB, hasher *auth.PasswordHasher, lg *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now().UTC()

	departments := store.NewCollection[departmentDatamodel.Department](gdb)
	existing, err := departments.Find(ctx, store.Filter{"code": seedDepartmentCode})
	if err != nil {
		return fmt.Errorf("lookup department: %w", err)
	}

	var deptID string
	if len(existing) > 0 {
		deptID = existing[0].ID
		lg.Info("department already exists", "code", seedDepartmentCode)
	} else {
		d := department.NewDepartment(department.CreateDepartmentDTO{
			Name: "Operations",
			Code: seedDepartmentCode,
		}, "system", now)
		if err := departments.Insert(ctx, department.ToDataModel(d)); err != nil {
			return fmt.Errorf("insert department: %w", err)
		}
		deptID = d.ID
		lg.Info("seeded department", "code", seedDepartmentCode, "department_id", deptID)
	}

	users := userPostgres.NewUserRepository(gdb)
	for _, a := range seedAccounts {
		_, err := users.FindByEmail(ctx, a.Email)
		if err == nil {
			lg.Info("user already exists", "email", a.Email)
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("lookup user %s: %w", a.Email, err)
		}

		hash, err := hasher.Hash(a.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", a.Email, err)
		}
		var dept *string
		if a.Department {
			id := deptID
			dept = &id
		}
		u := user.NewPasswordUser(a.Name, a.Email, hash, a.Role, dept, now)
		if err := users.Create(ctx, user.ToDataModel(u)); err != nil {
			return fmt.Errorf("insert user %s: %w", a.Email, err)
		}
		lg.Info("seeded user", "email", a.Email, "role", a.Role)
	}
	return nil
}
