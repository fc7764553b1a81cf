package model

// FlowerKnowledge is one knowledge-base entry about a flower.
type FlowerKnowledge struct {
	FlowerName        string `json:"flower_name"`
	Meaning           string `json:"meaning"`
	Occasion          string `json:"occasion"`
	CareTips          string `json:"care_tips"`
	PriceRange        string `json:"price_range"`
	ColorSignificance string `json:"color_significance"`
	Season            string `json:"season"`
	Keywords          string `json:"keywords"`
	ID                int64  `json:"knowledge_id"`
}
