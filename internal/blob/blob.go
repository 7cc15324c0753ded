// Package blob re-exports the blob storage abstractions and selects a driver
// from the environment.
package blob

import (
	"carecore/internal/blob/core"
	"carecore/internal/infra/blob/fs"
	"carecore/internal/infra/blob/memory"
	"carecore/internal/infra/blob/s3"
	"context"
	"fmt"
	"os"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// PutOptions configures a blob write.
	PutOptions = core.PutOptions
	// SignedURLOptions configures URL pre-signing.
	SignedURLOptions = core.SignedURLOptions
	// Object describes stored blob metadata.
	Object = core.Object
	// Store is the interface for blob storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
)

// ErrUnsupported indicates an operation a driver does not provide.
var ErrUnsupported = core.ErrUnsupported

// Open selects a Store implementation using environment variables.
//
//	CARECORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	CARECORE_BLOB_FS_ROOT: directory root when driver=fs (default ./blobdata)
//	CARECORE_BLOB_S3_*: S3 settings, documented in the s3 driver
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("CARECORE_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return fs.New(os.Getenv("CARECORE_BLOB_FS_ROOT"))
	case DriverS3:
		return s3.OpenFromEnv(ctx)
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
