package domain

import "errors"

var (
	// ErrNotFound - запрошенный контент отсутствует в CMS
	ErrNotFound = errors.New("content not found")
	// ErrUpstream - CMS недоступна или вернула неожиданный ответ
	ErrUpstream = errors.New("content upstream failure")
	// ErrUnknownFilterField - попытка изменить фильтр, которого нет в FilterState
	ErrUnknownFilterField = errors.New("unknown filter field")
	// ErrInvalidLead - заявка не прошла валидацию
	ErrInvalidLead = errors.New("invalid lead")
	// ErrInvalidConsent - сохраненная запись согласия повреждена
	ErrInvalidConsent = errors.New("invalid consent record")
)
