package port

import "context"

// NavigatorPort выполняет переход на новый URL.
// Вызов блокируется до завершения перехода, по нему синхронизатор фильтров
// определяет состояние загрузки.
type NavigatorPort interface {
	Navigate(ctx context.Context, target string) error
}
