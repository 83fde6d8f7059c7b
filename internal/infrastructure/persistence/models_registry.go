package persistence

import "github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/persistence/models"

// AllModels lists every persistence model
func AllModels() []any {
	return []any{
		&models.ProductModel{},
		&models.ContactModel{},
		&models.StoreSettingsModel{},
		&models.AccountModel{},
		&models.TransactionModel{},
		&models.DocumentModel{},
		&models.DocumentItemModel{},
		&models.SequenceModel{},
	}
}
