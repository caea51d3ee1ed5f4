package infra

import (
	"fmt"

	"github.com/Alcm1997/Agroconecta/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (comprobante number sequences, partial indexes).
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

// RunMigrations creates or updates the schema. Also used by integration tests
// against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Categoria{},
		&model.UnidadMedida{},
		&model.TipoPago{},
		&model.Producto{},
		&model.DescuentoVolumen{},
		&model.OpcionAdicional{},
		&model.ProductoOpcion{},
		&model.PackComponente{},
		&model.Cliente{},
		&model.CarritoItem{},
		&model.Pedido{},
		&model.DetallePedido{},
		&model.Comprobante{},
		&model.DetalleComprobante{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// The two sequences back the per-type comprobante numbering; nextval inside
// the order transaction guarantees no duplicates under concurrency.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"comprobante boleta sequence",
			`CREATE SEQUENCE IF NOT EXISTS comprobante_boleta_seq START 1`},
		{"comprobante factura sequence",
			`CREATE SEQUENCE IF NOT EXISTS comprobante_factura_seq START 1`},
		// Tier lookup inside the pricing query: product + quantity range scan.
		{"descuento_volumen range index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_descuento_rango') THEN
    CREATE INDEX idx_descuento_rango
        ON descuento_volumen (id_producto, cantidad_minima);
  END IF;
END $$`},
		// Dashboard counts filter on estado constantly.
		{"pedido estado partial index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedido_pendiente') THEN
    CREATE INDEX idx_pedido_pendiente
        ON pedido (fecha_pedido)
        WHERE estado = 'Pendiente';
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("schema patch %q: %w", p.descr, err)
		}
	}
	return nil
}
