package domain

import "github.com/DRSN-tech/okna-shop/pkg/e"

// Category описывает категорию товара
type Category string

const (
	CategoryAll    Category = "all"
	CategorySeals  Category = "seals"
	CategorySills  Category = "sills"
	CategoryPanels Category = "panels"
)

var categoryTitles = map[Category]string{
	CategoryAll:    "Все товары",
	CategorySeals:  "Уплотнители",
	CategorySills:  "Подоконники",
	CategoryPanels: "Панели ПВХ",
}

// Valid сообщает, является ли категория одной из категорий товаров ("all" сюда не входит).
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok && c != CategoryAll
}

// Title возвращает отображаемое название категории.
func (c Category) Title() string {
	if title, ok := categoryTitles[c]; ok {
		return title
	}

	return string(c)
}

// ParseCategory разбирает значение фильтра. Пустая строка означает "all".
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryAll, nil
	}

	c := Category(s)
	if c == CategoryAll || c.Valid() {
		return c, nil
	}

	return "", e.Wrap(s, e.ErrInvalidCategory)
}
