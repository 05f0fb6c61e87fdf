package mother

import "errors"

var (
	ErrMotherNotFound      = errors.New("mother not found")
	ErrMotherAlreadyExists = errors.New("mother with this name and paternal surname already exists")
	ErrSentinelMissing     = errors.New("sentinel mother row is missing; database was not seeded")
)
