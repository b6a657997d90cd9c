package infra

import (
	"fmt"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create or update all tables, then applies the SQL patches GORM cannot
// express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations is shared with the integration tests, which migrate a
// throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Categoria{},
		&model.Producto{},
		&model.Empleado{},
		&model.Cupon{},
		&model.Caja{},
		&model.MovimientoCaja{},
		&model.Pedido{},
		&model.DetallePedido{},
		&model.Venta{},
		&model.DetalleVenta{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully
// handle. Safe to re-run on an already-patched database.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one open drawer session, enforced at the schema level as a
		// backstop to the advisory lock the engine takes.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_caja_unica_abierta') THEN
		    CREATE UNIQUE INDEX idx_caja_unica_abierta
		        ON caja ((estado))
		        WHERE estado = 'Abierto';
		  END IF;
		END $$`,
		// Usernames are unique only among non-deleted employees, so a
		// soft-deleted account's usuario can be reused.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_empleado_usuario_vigente') THEN
		    CREATE UNIQUE INDEX idx_empleado_usuario_vigente
		        ON empleados (usuario)
		        WHERE estado <> 2;
		  END IF;
		END $$`,
		// Movement listings are always day-scoped; index the timestamp.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movimiento_caja_fecha') THEN
		    CREATE INDEX idx_movimiento_caja_fecha ON movimiento_caja (fecha_hora);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
