package web

import (
	"html"
	"strconv"
)

func itoa(value int) string {
	return strconv.Itoa(value)
}

func esc(value string) string {
	return html.EscapeString(value)
}
