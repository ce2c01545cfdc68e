package errors

import "errors"

// ErrNotFound no value is stored under the requested key.
var ErrNotFound = errors.New("nenhum valor armazenado para a chave")

// ErrQuotaExceeded the value is larger than the storage quota allows.
var ErrQuotaExceeded = errors.New("espaço de armazenamento esgotado")

// ErrStorageUnavailable the backing store could not be reached.
var ErrStorageUnavailable = errors.New("armazenamento indisponível")
