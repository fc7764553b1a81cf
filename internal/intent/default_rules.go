package intent

import "github.com/Veraticus/bloom/internal/model"

// DefaultRules returns the shop's intent table. Order matters: specific
// intents such as occasion and flower type come before order and help,
// which match common words like "mua".
func DefaultRules() []Rule {
	return []Rule{
		{
			Intent:   model.IntentGreeting,
			Regex:    `^(xin chào|chào|hello|hi|hey)`,
			Priority: 90,
		},
		{
			Intent:   model.IntentRecommendation,
			Regex:    `(gợi ý|tư vấn|giới thiệu|nên mua|đề xuất|recommend)`,
			Priority: 80,
		},
		{
			Intent:   model.IntentOccasion,
			Regex:    `(sinh nhật|valentine|kỷ niệm|cưới|đám cưới|khai trương|chia buồn|thăm bệnh|ngày của mẹ|20/10|8/3)`,
			Priority: 70,
		},
		{
			Intent:   model.IntentFlowerType,
			Regex:    `(hoa hồng|hoa ly|hoa cúc|hoa tulip|hoa lan|hoa hướng dương|hoa cẩm chướng|rose|lily|orchid)`,
			Priority: 60,
		},
		{
			Intent:   model.IntentPrice,
			Regex:    `(giá|bao nhiêu|price|cost|budget|ngân sách)`,
			Priority: 50,
		},
		{
			Intent:   model.IntentCare,
			Regex:    `(chăm sóc|cách chăm|bảo quản|giữ tươi|care)`,
			Priority: 40,
		},
		{
			Intent:   model.IntentMeaning,
			Regex:    `(ý nghĩa|tượng trưng|biểu tượng|meaning|symbolize)`,
			Priority: 30,
		},
		{
			Intent:   model.IntentOrder,
			Regex:    `(đặt hàng|mua|order|buy|cart|giỏ hàng)`,
			Priority: 20,
		},
		{
			Intent:   model.IntentHelp,
			Regex:    `(giúp|help|hỗ trợ|support)`,
			Priority: 10,
		},
	}
}
