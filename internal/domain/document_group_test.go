package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T, id string, originalID string, version int, category DocumentCategory) Document {
	t.Helper()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)

	doc := Document{
		UUID:     parsed,
		Version:  version,
		Category: category,
		Name:     "doc-" + id[:8],
	}
	if originalID != "" {
		orig, err := uuid.Parse(originalID)
		require.NoError(t, err)
		doc.OriginalID = &orig
	}
	return doc
}

const (
	idA = "11111111-1111-1111-1111-111111111111"
	idB = "22222222-2222-2222-2222-222222222222"
	idC = "33333333-3333-3333-3333-333333333333"
	idX = "99999999-9999-9999-9999-999999999999"
)

func TestGroupDocuments_Empty(t *testing.T) {
	grouped := GroupDocuments(nil)
	assert.Empty(t, grouped)

	grouped = GroupDocuments([]Document{})
	assert.Empty(t, grouped)
	assert.Equal(t, map[DocumentCategory]int{CategoryAll: 0}, grouped.GroupCounts())
}

func TestGroupDocuments_VersionChainsAndCounts(t *testing.T) {
	docs := []Document{
		newDoc(t, idA, "", 1, CategoryContract),
		newDoc(t, idB, idA, 2, CategoryContract),
		newDoc(t, idC, "", 1, CategoryGeneral),
	}

	grouped := GroupDocuments(docs)

	require.Len(t, grouped, 2)
	require.Len(t, grouped[CategoryContract], 1)
	require.Len(t, grouped[CategoryGeneral], 1)

	contract := grouped[CategoryContract][idA]
	require.NotNil(t, contract)
	require.Len(t, contract.Versions, 2)
	assert.Equal(t, 2, contract.Versions[0].Version)
	assert.Equal(t, 1, contract.Versions[1].Version)
	assert.Equal(t, idB, contract.Current().UUID.String())
	assert.True(t, contract.HasMultipleVersions)

	general := grouped[CategoryGeneral][idC]
	require.NotNil(t, general)
	assert.False(t, general.HasMultipleVersions)

	counts := grouped.GroupCounts()
	assert.Equal(t, map[DocumentCategory]int{
		CategoryAll:      2,
		CategoryContract: 1,
		CategoryGeneral:  1,
	}, counts)
}

func TestGroupDocuments_OrphanedVersion(t *testing.T) {
	// Версия без присутствующего оригинала всё равно образует связную
	// группу под значением original_id.
	docs := []Document{
		newDoc(t, idB, idX, 2, CategoryLegal),
	}

	grouped := GroupDocuments(docs)

	require.Len(t, grouped[CategoryLegal], 1)
	group := grouped[CategoryLegal][idX]
	require.NotNil(t, group)
	assert.False(t, group.HasMultipleVersions)
	assert.Equal(t, 1, grouped.GroupCounts()[CategoryAll])
}

func TestGroupDocuments_MissingCategoryDefaultsToGeneral(t *testing.T) {
	docs := []Document{
		newDoc(t, idA, "", 1, ""),
	}

	grouped := GroupDocuments(docs)

	require.Len(t, grouped[CategoryGeneral], 1)
	assert.NotContains(t, grouped, DocumentCategory(""))
}

func TestGroupDocuments_UnknownCategoryPassesThrough(t *testing.T) {
	docs := []Document{
		newDoc(t, idA, "", 1, "SURVEY"),
	}

	grouped := GroupDocuments(docs)
	require.Len(t, grouped[DocumentCategory("SURVEY")], 1)
}

func TestGroupDocuments_StableForDuplicateVersions(t *testing.T) {
	// Дубликаты номеров версий не должны возникать при корректной
	// нумерации, но группировка обязана их сохранить в исходном порядке.
	first := newDoc(t, idA, "", 1, CategoryContract)
	first.Name = "first"
	second := newDoc(t, idB, idA, 1, CategoryContract)
	second.Name = "second"

	grouped := GroupDocuments([]Document{first, second})

	group := grouped[CategoryContract][idA]
	require.Len(t, group.Versions, 2)
	assert.Equal(t, "first", group.Versions[0].Name)
	assert.Equal(t, "second", group.Versions[1].Name)
}

func TestGroupDocuments_RegroupIdempotent(t *testing.T) {
	docs := []Document{
		newDoc(t, idA, "", 1, CategoryContract),
		newDoc(t, idB, idA, 3, CategoryContract),
		newDoc(t, idC, "", 2, CategoryFinancial),
	}

	grouped := GroupDocuments(docs)
	regrouped := GroupDocuments(grouped.Flatten())

	assert.Equal(t, grouped, regrouped)
	assert.Equal(t, grouped.GroupCounts(), regrouped.GroupCounts())
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, CategoryGeneral, NormalizeCategory(""))
	assert.Equal(t, CategoryContract, NormalizeCategory("CONTRACT"))
	assert.Equal(t, DocumentCategory("SURVEY"), NormalizeCategory("SURVEY"))
}
