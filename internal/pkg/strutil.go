package pkg

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase 姓名、群组标题统一首字母大写
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
