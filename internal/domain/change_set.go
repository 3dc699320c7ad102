package domain

import "time"

// TrackableFields — закрытый набор полей дела, попадающих в журнал
// изменений. Поля вне набора не сравниваются и не логируются, чтобы записи
// журнала оставались маленькими и стабильными.
var TrackableFields = []string{
	"type",
	"date",
	"settlementDate",
	"amount",
	"status",
	"propertyId",
	"buyerId",
	"sellerId",
}

// MatterSnapshot — плоский снимок отслеживаемых полей дела. Даты в снимке
// уже нормализованы (UTC, начало дня), см. Matter.Snapshot.
type MatterSnapshot struct {
	Type           string     `json:"type"`
	Date           *time.Time `json:"date"`
	SettlementDate *time.Time `json:"settlementDate"`
	Amount         *float64   `json:"amount"`
	Status         string     `json:"status"`
	PropertyID     *string    `json:"propertyId"`
	BuyerID        *string    `json:"buyerId"`
	SellerID       *string    `json:"sellerId"`
}

// FieldChange — значение поля до и после изменения.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// ChangeSet — изменившиеся поля дела. Пустая структура означает, что
// изменение не затронуло отслеживаемые поля.
type ChangeSet map[string]FieldChange

// ComputeChanges сравнивает два снимка строго по набору TrackableFields и
// возвращает только различающиеся поля. Чистая функция без побочных
// эффектов, порядок обхода полей значения не имеет.
func ComputeChanges(previous, next MatterSnapshot) ChangeSet {
	changes := make(ChangeSet)

	for _, field := range TrackableFields {
		from := previous.field(field)
		to := next.field(field)
		if from != to {
			changes[field] = FieldChange{From: from, To: to}
		}
	}

	return changes
}

// field возвращает значение отслеживаемого поля; nil-указатели приводятся
// к nil, чтобы сравнение шло по самим значениям.
func (s MatterSnapshot) field(name string) any {
	switch name {
	case "type":
		return s.Type
	case "date":
		return timeValue(s.Date)
	case "settlementDate":
		return timeValue(s.SettlementDate)
	case "amount":
		return floatValue(s.Amount)
	case "status":
		return s.Status
	case "propertyId":
		return stringValue(s.PropertyID)
	case "buyerId":
		return stringValue(s.BuyerID)
	case "sellerId":
		return stringValue(s.SellerID)
	}
	return nil
}

func timeValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func floatValue(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func stringValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
