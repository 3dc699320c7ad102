package domain

import "sort"

// VersionGroup — все версии одного логического документа, новые первыми.
type VersionGroup struct {
	Key                 string     `json:"key"`
	Versions            []Document `json:"versions"`
	HasMultipleVersions bool       `json:"has_multiple_versions"`
}

// Current возвращает версию, отображаемую по умолчанию.
func (g *VersionGroup) Current() Document {
	return g.Versions[0]
}

// GroupedDocuments — категория -> ключ группы -> группа версий.
type GroupedDocuments map[DocumentCategory]map[string]*VersionGroup

// GroupDocuments группирует плоский список документов дела сначала по
// категории, затем по логическому документу. Документ без original_id
// образует группу под собственным uuid; версия с original_id попадает в
// группу оригинала, даже если сам оригинал в выборке отсутствует.
// Пустой вход даёт пустую структуру.
func GroupDocuments(documents []Document) GroupedDocuments {
	grouped := make(GroupedDocuments)

	for _, doc := range documents {
		category := NormalizeCategory(string(doc.Category))

		byKey, ok := grouped[category]
		if !ok {
			byKey = make(map[string]*VersionGroup)
			grouped[category] = byKey
		}

		key := doc.GroupKey()
		group, ok := byKey[key]
		if !ok {
			group = &VersionGroup{Key: key}
			byKey[key] = group
		}
		group.Versions = append(group.Versions, doc)
	}

	// Сортировка версий по убыванию. Стабильная: дубликаты номеров версий
	// не должны возникать, но при появлении сохраняют исходный порядок.
	for _, byKey := range grouped {
		for _, group := range byKey {
			sort.SliceStable(group.Versions, func(i, j int) bool {
				return group.Versions[i].Version > group.Versions[j].Version
			})
			group.HasMultipleVersions = len(group.Versions) > 1
		}
	}

	return grouped
}

// GroupCounts считает группы (не документы) по категориям. Псевдокатегория
// ALL содержит сумму по всем реальным категориям; счётчики используются
// для бейджей табов на клиенте.
func (g GroupedDocuments) GroupCounts() map[DocumentCategory]int {
	counts := make(map[DocumentCategory]int, len(g)+1)

	total := 0
	for category, byKey := range g {
		counts[category] = len(byKey)
		total += len(byKey)
	}
	counts[CategoryAll] = total

	return counts
}

// Flatten возвращает все документы структуры одним списком. Повторная
// группировка результата даёт ту же структуру.
func (g GroupedDocuments) Flatten() []Document {
	var documents []Document
	for _, byKey := range g {
		for _, group := range byKey {
			documents = append(documents, group.Versions...)
		}
	}
	return documents
}
