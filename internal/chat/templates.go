package chat

import (
	"fmt"

	"github.com/Veraticus/bloom/internal/model"
)

const greetingText = "Xin chào! Tôi là trợ lý tư vấn hoa của shop. Tôi có thể giúp bạn:\n\n" +
	"🌸 Tư vấn chọn hoa phù hợp theo dịp\n" +
	"💐 Gợi ý sản phẩm dựa trên sở thích\n" +
	"🌺 Hướng dẫn chăm sóc hoa\n" +
	"🌹 Giải thích ý nghĩa các loài hoa\n\n" +
	"Bạn cần tư vấn gì về hoa ạ?"

const (
	recommendationText = "Dựa trên lịch sử mua hàng của bạn, tôi xin gợi ý những sản phẩm sau:"
	clarifyingText     = "Tôi có thể gợi ý hoa cho bạn! Bạn muốn mua hoa cho dịp gì? (Ví dụ: sinh nhật, valentine, khai trương...)"
)

const occasionGuideText = "Tôi có thể tư vấn hoa cho nhiều dịp khác nhau như:\n\n" +
	"💕 Sinh nhật, Valentine, Kỷ niệm\n" +
	"💒 Đám cưới\n" +
	"🎉 Khai trương\n" +
	"🙏 Chia buồn, Thăm bệnh\n" +
	"👩 Ngày của Mẹ, 20/10, 8/3\n\n" +
	"Bạn cần hoa cho dịp nào?"

const flowerTypeGuideText = "Tôi có thể tư vấn về nhiều loại hoa như: Hoa hồng, Hoa ly, Hoa cúc, Hoa tulip, " +
	"Hoa lan, Hoa hướng dương, Hoa cẩm chướng... Bạn muốn biết về loại hoa nào?"

const priceText = "Giá hoa tại shop rất đa dạng:\n\n" +
	"💐 **Phổ thông:** 100.000đ - 300.000đ\n" +
	"🌸 **Trung cấp:** 300.000đ - 800.000đ\n" +
	"🌹 **Cao cấp:** 800.000đ - 2.000.000đ+\n\n" +
	"Bạn có ngân sách bao nhiêu? Tôi sẽ gợi ý sản phẩm phù hợp!"

const careText = "🌱 **Mẹo chăm sóc hoa tươi lâu:**\n\n" +
	"1. Cắt chéo cuống hoa trước khi cắm\n" +
	"2. Thay nước sạch mỗi 2-3 ngày\n" +
	"3. Đặt bình hoa nơi thoáng mát, tránh ánh nắng trực tiếp\n" +
	"4. Cắt bỏ lá úa và hoa héo\n" +
	"5. Có thể thêm đường hoặc aspirin vào nước\n\n" +
	"Bạn muốn biết cách chăm sóc loại hoa cụ thể nào?"

const meaningText = "🌸 **Ý nghĩa các loài hoa phổ biến:**\n\n" +
	"🌹 **Hoa hồng:** Tình yêu, lãng mạn\n" +
	"🌺 **Hoa ly:** Thuần khiết, thanh lịch\n" +
	"🌼 **Hoa cúc:** Vui vẻ, lạc quan\n" +
	"🌷 **Hoa tulip:** Tình yêu hoàn hảo\n" +
	"🌻 **Hoa hướng dương:** Niềm vui, năng lượng\n" +
	"🌸 **Hoa lan:** Sang trọng, quý phái\n\n" +
	"Bạn muốn tìm hiểu về loại hoa nào?"

const orderText = "Để đặt hàng, bạn có thể:\n\n" +
	"1. 🛒 Thêm sản phẩm vào giỏ hàng\n" +
	"2. 📝 Điền thông tin giao hàng\n" +
	"3. 💳 Chọn phương thức thanh toán\n" +
	"4. ✅ Xác nhận đơn hàng\n\n" +
	"Bạn cần tôi gợi ý sản phẩm không?"

const helpText = "Tôi có thể giúp bạn:\n\n" +
	"🌸 Tư vấn chọn hoa theo dịp\n" +
	"💐 Gợi ý sản phẩm phù hợp\n" +
	"🌺 Hướng dẫn chăm sóc hoa\n" +
	"🌹 Giải thích ý nghĩa hoa\n" +
	"💰 Tư vấn giá cả\n" +
	"📦 Hướng dẫn đặt hàng\n\n" +
	"Bạn cần giúp đỡ về vấn đề gì?"

const unknownText = "Tôi chưa hiểu rõ câu hỏi của bạn. Bạn có thể hỏi tôi về:\n\n" +
	"• Gợi ý hoa cho dịp đặc biệt\n" +
	"• Ý nghĩa các loài hoa\n" +
	"• Cách chăm sóc hoa\n" +
	"• Giá cả sản phẩm\n\n" +
	"Hoặc bạn có thể nói cụ thể hơn về nhu cầu của mình!"

// ApologyText replaces the reply when composing fails.
const ApologyText = "Xin lỗi, tôi đang gặp sự cố khi xử lý yêu cầu của bạn. Vui lòng thử lại sau!"

// staticTexts are the replies that never consult the store.
var staticTexts = map[model.Intent]string{
	model.IntentGreeting: greetingText,
	model.IntentPrice:    priceText,
	model.IntentCare:     careText,
	model.IntentMeaning:  meaningText,
	model.IntentOrder:    orderText,
	model.IntentHelp:     helpText,
}

// knowledgeGuides are the replies used when a knowledge lookup finds nothing.
var knowledgeGuides = map[model.Intent]string{
	model.IntentOccasion:   occasionGuideText,
	model.IntentFlowerType: flowerTypeGuideText,
	model.IntentGeneral:    unknownText,
}

func occasionAnswer(k model.FlowerKnowledge) string {
	return fmt.Sprintf("🌸 **%s** rất phù hợp!\n\n"+
		"✨ **Ý nghĩa:** %s\n"+
		"🎨 **Màu sắc:** %s\n"+
		"💰 **Giá:** %s\n\n"+
		"Bạn có muốn xem các sản phẩm %s không?",
		k.FlowerName, k.Meaning, k.ColorSignificance, k.PriceRange, k.FlowerName)
}

func flowerTypeAnswer(k model.FlowerKnowledge) string {
	return fmt.Sprintf("🌸 **%s**\n\n"+
		"✨ **Ý nghĩa:** %s\n"+
		"🎨 **Màu sắc:** %s\n"+
		"🌱 **Chăm sóc:** %s\n"+
		"📅 **Mùa:** %s\n"+
		"💰 **Giá:** %s\n\n"+
		"Phù hợp cho: %s",
		k.FlowerName, k.Meaning, k.ColorSignificance, k.CareTips, k.Season, k.PriceRange, k.Occasion)
}

func generalAnswer(k model.FlowerKnowledge) string {
	return fmt.Sprintf("Tôi tìm thấy thông tin về **%s**:\n\n"+
		"%s\n\n"+
		"Phù hợp cho: %s\n\n"+
		"Bạn có muốn xem sản phẩm không?",
		k.FlowerName, k.Meaning, k.Occasion)
}

// knowledgeAnswers format the top knowledge hit per intent.
var knowledgeAnswers = map[model.Intent]func(model.FlowerKnowledge) string{
	model.IntentOccasion:   occasionAnswer,
	model.IntentFlowerType: flowerTypeAnswer,
	model.IntentGeneral:    generalAnswer,
}
