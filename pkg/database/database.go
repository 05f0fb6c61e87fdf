package database

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vinculodevida/lactario/internal/config"
	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/internal/domain/catalog"
	"github.com/vinculodevida/lactario/internal/domain/infant"
	"github.com/vinculodevida/lactario/internal/domain/mother"
	"github.com/vinculodevida/lactario/internal/domain/visit"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		// TranslateError maps driver unique-violation errors to
		// gorm.ErrDuplicatedKey, which the repositories rely on.
		TranslateError: true,
		PrepareStmt:    true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	models := []any{
		&domain.Role{},
		&domain.User{},
		&domain.AuditLog{},
		&domain.Report{},
		&catalog.CareArea{},
		&catalog.Reason{},
		&mother.Mother{},
		&infant.Infant{},
		&infant.GrowthCheck{},
		&visit.Visit{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// Seed inserts the static catalogs, the fallback mother and the bootstrap
// admin account into an empty database. It is idempotent: rows that already
// exist are left untouched.
func Seed(db *gorm.DB, cfg config.BootstrapConfig, log *zap.Logger) error {
	roles := []domain.Role{
		{Name: string(domain.RoleAdministrator), Permission: "all"},
		{Name: string(domain.RoleNurse), Permission: "read_write_patients"},
	}
	for i := range roles {
		if err := firstOrCreate(db, &roles[i], "name = ?", roles[i].Name); err != nil {
			return fmt.Errorf("seeding role %s: %w", roles[i].Name, err)
		}
	}

	reasons := []catalog.Reason{
		{Name: catalog.ReasonRoutineCheckup, Category: "Control"},
		{Name: "Donación de leche", Category: "Lactancia Materna"},
		{Name: "Lactancia Materna", Category: "Apoyo"},
	}
	for i := range reasons {
		if err := firstOrCreate(db, &reasons[i], "name = ?", reasons[i].Name); err != nil {
			return fmt.Errorf("seeding reason %s: %w", reasons[i].Name, err)
		}
	}

	areas := []catalog.CareArea{
		{Name: "UCIN", Category: "Médica"},
		{Name: "UTIN", Category: "Médica"},
		{Name: "Crecimiento y desarrollo", Category: "Médica"},
		{Name: "Foraneos", Category: "No Médica"},
	}
	for i := range areas {
		if err := firstOrCreate(db, &areas[i], "name = ?", areas[i].Name); err != nil {
			return fmt.Errorf("seeding area %s: %w", areas[i].Name, err)
		}
	}

	sentinel := mother.Mother{
		Name:            mother.SentinelName,
		PaternalSurname: mother.SentinelPaternalSurname,
		ReasonID:        reasons[0].ID,
	}
	if err := firstOrCreate(db, &sentinel, "name = ? AND paternal_surname = ?",
		sentinel.Name, sentinel.PaternalSurname); err != nil {
		return fmt.Errorf("seeding fallback mother: %w", err)
	}

	var adminRole domain.Role
	if err := db.Where("name = ?", string(domain.RoleAdministrator)).First(&adminRole).Error; err != nil {
		return fmt.Errorf("looking up admin role: %w", err)
	}

	password := cfg.AdminPassword
	if password == "" {
		// Development fallback; production requires an explicit password.
		password = "12345"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing bootstrap password: %w", err)
	}

	admin := domain.User{
		Name:         cfg.AdminName,
		Phone:        cfg.AdminPhone,
		PasswordHash: string(hash),
		RoleID:       adminRole.ID,
	}
	created, err := firstOrCreateReport(db, &admin, "phone = ?", admin.Phone)
	if err != nil {
		return fmt.Errorf("seeding bootstrap admin: %w", err)
	}
	if created {
		log.Info("bootstrap admin created", zap.String("name", admin.Name))
	}

	return nil
}

func firstOrCreate(db *gorm.DB, dest any, query string, args ...any) error {
	_, err := firstOrCreateReport(db, dest, query, args...)
	return err
}

func firstOrCreateReport(db *gorm.DB, dest any, query string, args ...any) (bool, error) {
	err := db.Where(query, args...).First(dest).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := db.Create(dest).Error; err != nil {
		return false, err
	}
	return true, nil
}
