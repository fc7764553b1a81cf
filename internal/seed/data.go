package seed

import "github.com/Veraticus/bloom/internal/model"

type demoProduct struct {
	name        string
	slug        string
	description string
	price       float64
	stock       int
}

type demoCategory struct {
	category model.Category
	products []demoProduct
}

var demoCatalog = []demoCategory{
	{
		category: model.Category{Name: "Hoa sinh nhật", Slug: "hoa-sinh-nhat", Description: "Bó hoa và giỏ hoa tặng sinh nhật", IsActive: true},
		products: []demoProduct{
			{name: "Bó hoa hồng đỏ", slug: "bo-hoa-hong-do", description: "20 bông hồng đỏ Đà Lạt gói giấy kraft", price: 450000, stock: 25},
			{name: "Bó hoa hồng phấn", slug: "bo-hoa-hong-phan", description: "15 bông hồng phấn kèm baby trắng", price: 380000, stock: 20},
			{name: "Giỏ hoa hướng dương", slug: "gio-hoa-huong-duong", description: "Giỏ 9 bông hướng dương rực rỡ", price: 520000, stock: 12},
			{name: "Bó tulip Hà Lan", slug: "bo-tulip-ha-lan", description: "10 bông tulip nhập khẩu nhiều màu", price: 890000, stock: 8},
		},
	},
	{
		category: model.Category{Name: "Hoa tình yêu", Slug: "hoa-tinh-yeu", Description: "Hoa tặng người thương, Valentine và kỷ niệm", IsActive: true},
		products: []demoProduct{
			{name: "Hộp hoa hồng Ecuador", slug: "hop-hoa-hong-ecuador", description: "Hộp tròn 12 bông hồng Ecuador", price: 1250000, stock: 6},
			{name: "Bó 99 hoa hồng", slug: "bo-99-hoa-hong", description: "99 bông hồng đỏ cho lời cầu hôn", price: 2990000, stock: 3},
			{name: "Bó cẩm tú cầu xanh", slug: "bo-cam-tu-cau-xanh", description: "Cẩm tú cầu xanh kết hợp hồng trắng", price: 560000, stock: 10},
		},
	},
	{
		category: model.Category{Name: "Hoa khai trương", Slug: "hoa-khai-truong", Description: "Kệ hoa chúc mừng khai trương, hồng phát", IsActive: true},
		products: []demoProduct{
			{name: "Kệ hoa khai trương hồng phát", slug: "ke-hoa-khai-truong-hong-phat", description: "Kệ 2 tầng hoa đồng tiền và lay ơn", price: 1500000, stock: 5},
			{name: "Kệ hoa đại cát", slug: "ke-hoa-dai-cat", description: "Kệ 3 tầng hoa hướng dương và lan vũ nữ", price: 2200000, stock: 4},
			{name: "Chậu lan hồ điệp 5 cành", slug: "chau-lan-ho-diep-5-canh", description: "Lan hồ điệp vàng trong chậu sứ", price: 1800000, stock: 7},
		},
	},
	{
		category: model.Category{Name: "Hoa chúc mừng", Slug: "hoa-chuc-mung", Description: "Hoa tặng thầy cô, tốt nghiệp và ngày 8/3, 20/10", IsActive: true},
		products: []demoProduct{
			{name: "Bó cẩm chướng hồng", slug: "bo-cam-chuong-hong", description: "Cẩm chướng hồng tặng mẹ và cô giáo", price: 320000, stock: 18},
			{name: "Bó hoa ly trắng", slug: "bo-hoa-ly-trang", description: "5 cành ly trắng thơm nhẹ", price: 480000, stock: 14},
			{name: "Bó hoa tốt nghiệp", slug: "bo-hoa-tot-nghiep", description: "Hướng dương và cúc họa mi", price: 350000, stock: 22},
		},
	},
	{
		category: model.Category{Name: "Hoa chia buồn", Slug: "hoa-chia-buon", Description: "Vòng hoa và kệ hoa tang lễ", IsActive: true},
		products: []demoProduct{
			{name: "Vòng hoa cúc trắng", slug: "vong-hoa-cuc-trang", description: "Vòng hoa cúc trắng và ly trắng", price: 1200000, stock: 6},
			{name: "Kệ hoa chia buồn", slug: "ke-hoa-chia-buon", description: "Kệ hoa lan trắng và cúc", price: 1600000, stock: 0},
		},
	},
}

var demoKnowledge = []model.FlowerKnowledge{
	{
		FlowerName:        "Hoa Hồng",
		Meaning:           "Biểu tượng của tình yêu và sự lãng mạn",
		Occasion:          "Valentine, sinh nhật, kỷ niệm ngày cưới",
		CareTips:          "Cắt chéo gốc, thay nước mỗi ngày, tránh ánh nắng trực tiếp",
		PriceRange:        "300.000đ - 3.000.000đ",
		ColorSignificance: "Đỏ: tình yêu nồng cháy. Hồng: sự dịu dàng. Trắng: sự thuần khiết",
		Season:            "Quanh năm",
		Keywords:          "hồng, rose, tình yêu, valentine, lãng mạn",
	},
	{
		FlowerName:        "Hoa Ly",
		Meaning:           "Sự cao quý và thanh khiết",
		Occasion:          "Chúc mừng, tốt nghiệp, chia buồn",
		CareTips:          "Ngắt nhị hoa khi nở để hoa lâu tàn, giữ nước sạch",
		PriceRange:        "250.000đ - 800.000đ",
		ColorSignificance: "Trắng: sự trong sáng. Hồng: sự ngưỡng mộ",
		Season:            "Quanh năm",
		Keywords:          "ly, lily, cao quý, thanh khiết",
	},
	{
		FlowerName:        "Hoa Hướng Dương",
		Meaning:           "Niềm tin, hy vọng và sự lạc quan",
		Occasion:          "Khai trương, tốt nghiệp, sinh nhật",
		CareTips:          "Đặt nơi nhiều ánh sáng, thay nước hai ngày một lần",
		PriceRange:        "200.000đ - 2.200.000đ",
		ColorSignificance: "Vàng: sự ấm áp và thành công",
		Season:            "Mùa hè",
		Keywords:          "hướng dương, sunflower, khai trương, lạc quan",
	},
	{
		FlowerName:        "Hoa Tulip",
		Meaning:           "Tình yêu hoàn hảo",
		Occasion:          "Valentine, sinh nhật, 8/3",
		CareTips:          "Cắm nước lạnh, để nơi thoáng mát",
		PriceRange:        "500.000đ - 1.500.000đ",
		ColorSignificance: "Đỏ: lời tỏ tình. Vàng: niềm vui. Tím: sự chung thủy",
		Season:            "Mùa xuân",
		Keywords:          "tulip, tình yêu, hà lan",
	},
	{
		FlowerName:        "Hoa Lan Hồ Điệp",
		Meaning:           "Sự sang trọng và thịnh vượng",
		Occasion:          "Khai trương, Tết, tân gia",
		CareTips:          "Tưới nước một lần mỗi tuần, tránh úng rễ",
		PriceRange:        "800.000đ - 5.000.000đ",
		ColorSignificance: "Vàng: tài lộc. Trắng: sự thanh lịch",
		Season:            "Quanh năm",
		Keywords:          "lan, hồ điệp, orchid, sang trọng, tết",
	},
	{
		FlowerName:        "Hoa Cẩm Chướng",
		Meaning:           "Tình mẫu tử và lòng biết ơn",
		Occasion:          "Ngày của mẹ, 20/10, 20/11",
		CareTips:          "Tỉa lá dưới nước, thay nước thường xuyên",
		PriceRange:        "200.000đ - 500.000đ",
		ColorSignificance: "Hồng: lòng biết ơn. Đỏ: sự ngưỡng mộ",
		Season:            "Quanh năm",
		Keywords:          "cẩm chướng, carnation, mẹ, thầy cô, biết ơn",
	},
	{
		FlowerName:        "Hoa Cúc",
		Meaning:           "Sự trường thọ và lòng thành kính",
		Occasion:          "Chia buồn, thăm hỏi, Tết",
		CareTips:          "Bỏ lá ngập nước, cắt gốc mỗi hai ngày",
		PriceRange:        "150.000đ - 1.200.000đ",
		ColorSignificance: "Trắng: sự tiếc thương. Vàng: sự trường thọ",
		Season:            "Mùa thu",
		Keywords:          "cúc, chrysanthemum, chia buồn, trường thọ",
	},
}
