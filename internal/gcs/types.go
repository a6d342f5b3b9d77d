package gcs

import (
	"context"
)

// StorageService provides an interface for the storage operations the
// ingestion pipeline and the upload tooling rely on. It exists so tests can
// substitute an in-memory implementation.
type StorageService interface {
	// UploadFile uploads a local file to a storage bucket under the given object name.
	UploadFile(ctx context.Context, bucketName, objectName, filePath string) error

	// FetchFromGCS downloads file bytes from the given storage URI.
	FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error)

	// ExtractFilenameFromGCSURI extracts the filename from a storage URI.
	ExtractFilenameFromGCSURI(uri string) string
}

// Ensure GCSStorageService implements StorageService interface.
var _ StorageService = (*GCSStorageService)(nil)
