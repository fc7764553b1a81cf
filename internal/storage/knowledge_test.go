package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/bloom/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedKnowledge(t *testing.T, store *SQLiteStorage) {
	t.Helper()
	entries := []model.FlowerKnowledge{
		{
			FlowerName: "Hoa Hồng",
			Meaning:    "Tình yêu, sự lãng mạn",
			Occasion:   "Valentine, kỷ niệm",
			CareTips:   "Cắt chéo cành, thay nước mỗi ngày",
			Keywords:   "rose, tình yêu",
		},
		{
			FlowerName: "Hoa Ly",
			Meaning:    "Sự thuần khiết",
			Occasion:   "Khai trương, chúc mừng",
			Keywords:   "lily",
		},
		{
			FlowerName: "Hoa Cúc",
			Meaning:    "Trường thọ",
			Occasion:   "Chia buồn, thăm bệnh",
			Keywords:   "chrysanthemum",
		},
	}
	for i := range entries {
		require.NoError(t, store.SaveKnowledge(context.Background(), &entries[i]))
		require.Positive(t, entries[i].ID)
	}
}

func TestSQLiteStorage_SearchKnowledgeBase(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	seedKnowledge(t, store)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "occasion match", text: "quà VALENTINE", want: []string{"Hoa Hồng"}},
		{name: "keyword match", text: "lily", want: []string{"Hoa Ly"}},
		{name: "meaning match", text: "ý nghĩa trường thọ", want: []string{"Hoa Cúc"}},
		{name: "several entries", text: "khai trương hoặc chia buồn", want: []string{"Hoa Ly", "Hoa Cúc"}},
		{name: "short words ignored", text: "ly a", want: nil},
		{name: "no match", text: "xyzxyz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.SearchKnowledgeBase(ctx, tt.text)
			require.NoError(t, err)
			var names []string
			for _, r := range results {
				names = append(names, r.FlowerName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSearchTerms(t *testing.T) {
	assert.Equal(t, []string{"hoa", "hồng", "đỏ?"}, searchTerms("Hoa HỒNG đỏ? a"))
	assert.Nil(t, searchTerms("  hi ok "))
}

func TestSQLiteStorage_SaveKnowledgeValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	assert.ErrorIs(t, store.SaveKnowledge(context.Background(), nil), ErrNilParameter)
	assert.ErrorIs(t, store.SaveKnowledge(context.Background(), &model.FlowerKnowledge{}), ErrInvalidKnowledge)
}
