package uniqlo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// optionalString is a value that may be absent. Empty strings count as absent.
type optionalString struct {
	value   string
	present bool
}

func some(v string) optionalString {
	return optionalString{value: v, present: v != ""}
}

func (o optionalString) orElse(fallback string) string {
	if !o.present {
		return fallback
	}
	return o.value
}

// textOf returns the trimmed text of the first node in s.
func textOf(s *goquery.Selection) optionalString {
	if s.Length() == 0 {
		return optionalString{}
	}
	return some(strings.TrimSpace(s.First().Text()))
}

// attrOf reads an attribute of the first node in s.
func attrOf(s *goquery.Selection, name string) optionalString {
	v, exists := s.Attr(name)
	if !exists {
		return optionalString{}
	}
	return some(v)
}
