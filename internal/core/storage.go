package core

import (
	blobcore "carecore/internal/blob/core"
	"carecore/internal/infra/persistence/memory"
	"carecore/internal/infra/persistence/postgres"
	"carecore/internal/infra/persistence/sqlite"
	"carecore/pkg/domain"
	"fmt"
	"os"
	"time"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

type (
	// Transaction aliases the domain transaction interface.
	Transaction = domain.Transaction
	// TransactionView aliases the domain read view.
	TransactionView = domain.TransactionView
	// PersistentStore aliases the domain store interface.
	PersistentStore = domain.PersistentStore
	// Result aliases the rule evaluation outcome.
	Result = domain.Result
	// BlobStore aliases the document blob backend.
	BlobStore = blobcore.Store
)

// OpenPersistentStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	CARECORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	CARECORE_SQLITE_PATH: path to sqlite file (default ./carecore.db)
//	CARECORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenPersistentStore(engine *domain.RulesEngine) (PersistentStore, error) {
	driver := os.Getenv("CARECORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		store := memory.NewStore(engine)
		store.ImportState(memory.SeedSnapshot(time.Now()))
		return store, nil
	case StorageSQLite:
		path := os.Getenv("CARECORE_SQLITE_PATH")
		if path == "" {
			path = "./carecore.db"
		}
		return sqlite.Open(path, engine)
	case StoragePostgres:
		return postgres.Open(os.Getenv("CARECORE_POSTGRES_DSN"), engine)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
