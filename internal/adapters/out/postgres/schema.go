package postgres

import (
	"printshop/internal/adapters/out/postgres/clientrepo"
	"printshop/internal/adapters/out/postgres/orderitemrepo"
	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/adapters/out/postgres/outboxrepo"
	"printshop/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// Models lists the persisted DTOs in dependency order.
func Models() []any {
	return []any{
		&clientrepo.ClientDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryEntryDTO{},
		&orderitemrepo.ItemDTO{},
		&outboxrepo.MessageDTO{},
	}
}

// Migrate creates or updates the tables, indexes and foreign keys of the
// record store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
