package domain

// maxPlainPages - до этого количества страниц показываем все номера без многоточий
const maxPlainPages = 7

// PageMarker - один элемент панели пагинации: номер страницы или многоточие.
// У многоточия Page всегда равен 0.
type PageMarker struct {
	Page     int
	Ellipsis bool
}

// IsEllipsis сообщает, является ли маркер разрывом.
func (m PageMarker) IsEllipsis() bool {
	return m.Ellipsis
}

func pageMarker(page int) PageMarker {
	return PageMarker{Page: page}
}

var ellipsisMarker = PageMarker{Ellipsis: true}

// ShouldPaginate - контракт вызывающей стороны: при одной странице панель не рисуется.
func ShouldPaginate(totalPages int) bool {
	return totalPages > 1
}

// PaginationRange строит последовательность маркеров для панели пагинации.
//
// Первая страница и последняя показываются всегда, между ними окно из
// трех страниц вокруг текущей. У краев окно сдвигается внутрь диапазона
// [2, totalPages-1], поэтому видно 5 страниц подряд плюс граница.
func PaginationRange(currentPage, totalPages int) []PageMarker {
	if totalPages <= 0 {
		return []PageMarker{}
	}

	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	if totalPages <= maxPlainPages {
		markers := make([]PageMarker, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			markers = append(markers, pageMarker(p))
		}
		return markers
	}

	var windowStart, windowEnd int
	switch {
	case currentPage <= 3:
		windowStart, windowEnd = 2, 5
	case currentPage >= totalPages-2:
		windowStart, windowEnd = totalPages-4, totalPages-1
	default:
		windowStart, windowEnd = currentPage-1, currentPage+1
	}

	markers := make([]PageMarker, 0, windowEnd-windowStart+5)
	markers = append(markers, pageMarker(1))
	if windowStart > 2 {
		markers = append(markers, ellipsisMarker)
	}
	for p := windowStart; p <= windowEnd; p++ {
		markers = append(markers, pageMarker(p))
	}
	if windowEnd < totalPages-1 {
		markers = append(markers, ellipsisMarker)
	}
	markers = append(markers, pageMarker(totalPages))

	return markers
}
