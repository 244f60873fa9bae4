package export

import (
	"context"

	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Смета"
	totalLabel  = "Итого"
	moneyFormat = 2 // встроенный формат Excel "0.00"
)

var headers = []any{"№", "Товар", "Цена", "Ед.", "Количество", "Сумма"}

// XLSXExporter формирует смету по корзине в формате Excel.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export возвращает книгу с одним листом: заголовок, строки корзины и итог.
func (x *XLSXExporter) Export(_ context.Context, cart *usecase.CartInfo) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", bold); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	for i, line := range cart.Lines {
		row := i + 2
		values := []any{
			i + 1,
			line.Product.Name,
			line.Product.Price.InexactFloat64(),
			line.Product.Unit,
			line.Quantity.InexactFloat64(),
			line.Subtotal.InexactFloat64(),
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := x.styleMoney(f, row, money); err != nil {
			return nil, err
		}
	}

	totalRow := len(cart.Lines) + 2
	labelCell, _ := excelize.CoordinatesToCellName(5, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(6, totalRow)
	if err := f.SetCellValue(SheetName, labelCell, totalLabel); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := f.SetCellValue(SheetName, totalCell, cart.Total.InexactFloat64()); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := f.SetCellStyle(SheetName, labelCell, labelCell, bold); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := f.SetCellStyle(SheetName, totalCell, totalCell, money); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return buf.Bytes(), nil
}

// styleMoney применяет денежный формат к колонкам "Цена" и "Сумма".
func (x *XLSXExporter) styleMoney(f *excelize.File, row, style int) error {
	for _, col := range []int{3, 6} {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}
