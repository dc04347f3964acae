package port

// ConsentStoragePort - постоянное хранилище на стороне клиента (cookie, память в тестах).
type ConsentStoragePort interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// ConsentValidatorPort проверяет сырой JSON записи согласия до декодирования.
type ConsentValidatorPort interface {
	ValidateConsent(raw []byte) error
}
