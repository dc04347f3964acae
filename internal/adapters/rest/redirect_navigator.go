package rest

import (
	"context"
	"net/http"
)

// RedirectNavigator выполняет переход синхронизатора фильтров редиректом 303:
// форма фильтров отправляется POST-ом, браузер уходит на GET листинга.
type RedirectNavigator struct {
	w http.ResponseWriter
	r *http.Request

	// Location - куда ушел редирект (пусто, пока перехода не было)
	Location string
}

func NewRedirectNavigator(w http.ResponseWriter, r *http.Request) *RedirectNavigator {
	return &RedirectNavigator{w: w, r: r}
}

func (n *RedirectNavigator) Navigate(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	http.Redirect(n.w, n.r, target, http.StatusSeeOther)
	n.Location = target
	return nil
}
