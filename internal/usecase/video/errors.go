package video

import "errors"

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrTransport      = errors.New("storage: transport error")
	ErrInternal       = errors.New("storage: internal error")

	// ErrFileTooLarge is fatal and detected before any network call.
	ErrFileTooLarge = errors.New("upload: file exceeds the configured size limit")
	// ErrPartUploadFailed means the whole multipart transaction was aborted.
	ErrPartUploadFailed = errors.New("upload: part upload failed, transaction aborted")

	// ErrNotStored guards URL issuance: no link is minted mid-transfer.
	ErrNotStored = errors.New("video is not in stored state")
)
