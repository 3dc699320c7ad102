package domain

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// Плейсхолдер для отсутствующего значения в истории изменений.
	emptyValuePlaceholder = "—"

	changeDateLayout = "2 Jan 2006"
)

var fieldLabels = map[string]string{
	"type":           "Transaction Type",
	"date":           "Transaction Date",
	"settlementDate": "Settlement Date",
	"amount":         "Amount",
	"status":         "Status",
	"propertyId":     "Property",
	"buyerId":        "Buyer",
	"sellerId":       "Seller",
}

var amountPrinter = message.NewPrinter(language.English)

// FieldLabel возвращает человекочитаемую подпись отслеживаемого поля.
// Неизвестное имя поля возвращается как есть.
func FieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// FormatFieldValue форматирует значение поля для отображения в истории:
// сумма — как локализованная валюта, даты — как локализованная дата,
// остальное — строковым представлением. nil отображается плейсхолдером.
// Значения приходят как из живых снимков, так и из JSON, прочитанного из
// колонки details, поэтому даты обрабатываются и как time.Time, и как
// строки RFC3339.
func FormatFieldValue(field string, value any) string {
	if value == nil {
		return emptyValuePlaceholder
	}

	switch field {
	case "amount":
		switch v := value.(type) {
		case float64:
			return formatAmount(v)
		case int64:
			return formatAmount(float64(v))
		case int:
			return formatAmount(float64(v))
		}
	case "date", "settlementDate":
		switch v := value.(type) {
		case time.Time:
			return v.Format(changeDateLayout)
		case string:
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return t.Format(changeDateLayout)
			}
		}
	}

	return fmt.Sprintf("%v", value)
}

func formatAmount(v float64) string {
	return amountPrinter.Sprintf("$%v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
