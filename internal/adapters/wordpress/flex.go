package wordpress

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ACF отдает пустые поля как false, "" или [] вместо null, а числа бывают
// и строками, и числами. Типы ниже принимают все эти варианты.

var (
	jsonNull  = []byte("null")
	jsonFalse = []byte("false")
	jsonTrue  = []byte("true")
)

func isEmptyJSON(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 ||
		bytes.Equal(data, jsonNull) ||
		bytes.Equal(data, jsonFalse) ||
		bytes.Equal(data, []byte(`""`)) ||
		bytes.Equal(data, []byte("[]"))
}

// flexString - строка, число или false.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if isEmptyJSON(data) {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = flexString(num.String())
		return nil
	}
	// массив из select-поля ACF: берем первое значение
	var list []string
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
		*s = flexString(list[0])
		return nil
	}
	*s = ""
	return nil
}

func (s flexString) String() string {
	return strings.TrimSpace(string(s))
}

// flexNumber - число, строка с числом ("250.000", "1,5") или false.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	if isEmptyJSON(data) {
		*n = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = flexNumber(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*n = flexNumber(parseLooseNumber(str))
		return nil
	}
	*n = 0
	return nil
}

// parseLooseNumber понимает испанский формат: точка - разделитель тысяч, запятая - дробная часть.
func parseLooseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, " €$m²")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if strings.Count(s, ".") > 1 || (strings.Count(s, ".") == 1 && len(s)-strings.Index(s, ".") == 4) {
		s = strings.ReplaceAll(s, ".", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// flexCoord - координата. Разделителей тысяч здесь не бывает, поэтому
// "36.510" читается как есть, а не как 36510.
type flexCoord float64

func (c *flexCoord) UnmarshalJSON(data []byte) error {
	*c = 0
	if isEmptyJSON(data) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = flexCoord(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(str), ",", "."), 64); err == nil {
			*c = flexCoord(f)
		}
	}
	return nil
}

// flexBool - true/false, "1"/"0", "si"/"no", 1/0.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, jsonTrue):
		*b = true
		return nil
	case isEmptyJSON(data):
		*b = false
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		switch strings.ToLower(strings.TrimSpace(str)) {
		case "1", "true", "si", "sí", "yes":
			*b = true
		default:
			*b = false
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*b = f != 0
		return nil
	}
	*b = false
	return nil
}

// acfImage - поле-изображение ACF: объект, URL-строка или ID вложения.
// ID без _embed не разрешить, такое значение считается пустым.
type acfImage string

func (i *acfImage) UnmarshalJSON(data []byte) error {
	*i = ""
	if isEmptyJSON(data) {
		return nil
	}
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		if strings.HasPrefix(url, "http") || strings.HasPrefix(url, "/") {
			*i = acfImage(url)
		}
		return nil
	}
	var obj struct {
		URL   string `json:"url"`
		Sizes struct {
			Large string `json:"large"`
		} `json:"sizes"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Sizes.Large != "" {
			*i = acfImage(obj.Sizes.Large)
		} else {
			*i = acfImage(obj.URL)
		}
	}
	return nil
}

// acfGallery - галерея ACF: массив изображений или false.
type acfGallery []acfImage

func (g *acfGallery) UnmarshalJSON(data []byte) error {
	*g = nil
	if isEmptyJSON(data) {
		return nil
	}
	var items []acfImage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	*g = items
	return nil
}
