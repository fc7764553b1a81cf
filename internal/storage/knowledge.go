package storage

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
)

// knowledgeSearchLimit caps knowledge-base hits per search.
const knowledgeSearchLimit = 10

// SaveKnowledge inserts a knowledge-base entry.
func (s *SQLiteStorage) SaveKnowledge(ctx context.Context, entry *model.FlowerKnowledge) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKnowledge(entry); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO flower_knowledge
			(flower_name, meaning, occasion, care_tips, price_range, color_significance, season, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.FlowerName, entry.Meaning, entry.Occasion, entry.CareTips,
		entry.PriceRange, entry.ColorSignificance, entry.Season, entry.Keywords)
	if err != nil {
		return common.StoreError("insert knowledge", err)
	}
	entry.ID, err = result.LastInsertId()
	if err != nil {
		return common.StoreError("knowledge id", err)
	}
	return nil
}

// searchTerms splits text into lower-cased words longer than two characters.
func searchTerms(text string) []string {
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(word) > 2 {
			terms = append(terms, word)
		}
	}
	return terms
}

// SearchKnowledgeBase returns entries where any search term appears in the
// flower name, occasion, keywords or meaning. Text without usable terms
// yields no results.
func (s *SQLiteStorage) SearchKnowledgeBase(ctx context.Context, keywords string) ([]model.FlowerKnowledge, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	terms := searchTerms(keywords)
	if len(terms) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms)*4+1)
	for _, term := range terms {
		conditions = append(conditions, `(unicode_lower(flower_name) LIKE ? ESCAPE '\'
			OR unicode_lower(COALESCE(occasion, '')) LIKE ? ESCAPE '\'
			OR unicode_lower(COALESCE(keywords, '')) LIKE ? ESCAPE '\'
			OR unicode_lower(COALESCE(meaning, '')) LIKE ? ESCAPE '\')`)
		like := likePattern(term)
		args = append(args, like, like, like, like)
	}
	args = append(args, knowledgeSearchLimit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT knowledge_id, flower_name, COALESCE(meaning, ''), COALESCE(occasion, ''),
			COALESCE(care_tips, ''), COALESCE(price_range, ''), COALESCE(color_significance, ''),
			COALESCE(season, ''), COALESCE(keywords, '')
		FROM flower_knowledge
		WHERE `+strings.Join(conditions, " OR ")+`
		ORDER BY knowledge_id
		LIMIT ?`, args...)
	if err != nil {
		return nil, common.StoreError("search knowledge base", err)
	}
	defer rows.Close()

	var results []model.FlowerKnowledge
	for rows.Next() {
		var k model.FlowerKnowledge
		if err := rows.Scan(&k.ID, &k.FlowerName, &k.Meaning, &k.Occasion, &k.CareTips,
			&k.PriceRange, &k.ColorSignificance, &k.Season, &k.Keywords); err != nil {
			return nil, common.StoreError("scan knowledge", err)
		}
		results = append(results, k)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError("iterate knowledge", err)
	}
	return results, nil
}
