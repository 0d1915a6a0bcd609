// Package storetest opens isolated in-memory sqlite databases carrying the
// full schema, for repository and handler tests.
package storetest

import (
	"fmt"

	brandDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/brand"
	categoryDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/category"
	departmentDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/department"
	notificationDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/notification"
	planDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/plan"
	planningdataDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/planningdata"
	planrequestDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/planrequest"
	productDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/product"
	sessionDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/session"
	subcategoryDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/subcategory"
	userDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/user"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every persisted record type.
var Models = []interface{}{
	&userDatamodel.User{},
	&sessionDatamodel.Session{},
	&departmentDatamodel.Department{},
	&brandDatamodel.Brand{},
	&categoryDatamodel.Category{},
	&subcategoryDatamodel.Subcategory{},
	&productDatamodel.Product{},
	&planDatamodel.Plan{},
	&planrequestDatamodel.PlanRequest{},
	&planningdataDatamodel.PlanningData{},
	&notificationDatamodel.Notification{},
}

// Open returns a fresh database. Each call gets its own named in-memory
// database so pooled connections share one schema.
func Open() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(Models...); err != nil {
		return nil, err
	}
	return db, nil
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
