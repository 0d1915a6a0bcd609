package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/planforge/internal/auth/rbac"
	"github.com/frahmantamala/planforge/internal/brand"
	brandDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/brand"
	"github.com/frahmantamala/planforge/internal/core/store"
	"github.com/frahmantamala/planforge/pkg/logger"
	"github.com/spf13/cobra"
)

var cleanupBrandsCmd = &cobra.Command{
	Use:   "cleanup-brands",
	Short: "Delete brands missing required fields",
	Long:  `Delete brand records missing a name, short name, SAP division code, article type or merchandise code.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		initLogger(cfg)
		lg := logger.LoggerWrapper()

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		gdb, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		svc := brand.NewService(store.NewCollection[brandDatamodel.Brand](gdb), rbac.NewGate(lg), lg)
		removed, err := svc.RemoveIncomplete(cmd.Context())
		if err != nil {
			log.Fatalf("cleanup failed after %d deletions: %v", removed, err)
		}
		fmt.Printf("Removed %d incomplete brands\n", removed)
	},
}
