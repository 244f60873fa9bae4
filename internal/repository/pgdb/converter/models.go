package converter

// ProductModel представляет запись таблицы products в PostgreSQL.
// Цена читается как текст, чтобы не терять точность numeric.
type ProductModel struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Category string `db:"category"`
	Price    string `db:"price"`
	Unit     string `db:"unit"`
	Image    string `db:"image"`
}
