package catalog

// Common category names used across tests.
const (
	CategoryBirthday   CategoryName = "Hoa sinh nhật"
	CategoryWedding    CategoryName = "Hoa cưới"
	CategoryOpening    CategoryName = "Hoa khai trương"
	CategoryCondolence CategoryName = "Hoa chia buồn"
	CategoryRoses      CategoryName = "Hoa hồng"
	CategoryOrchids    CategoryName = "Lan hồ điệp"
)

// Common product names used across tests.
const (
	ProductRedRoses       ProductName = "Bó hoa hồng đỏ"
	ProductPinkRoses      ProductName = "Giỏ hoa hồng phấn"
	ProductRoseBox        ProductName = "Hộp hoa hồng sáp"
	ProductBirthdayBasket ProductName = "Giỏ hoa sinh nhật rực rỡ"
	ProductSunflowers     ProductName = "Bó hướng dương"
	ProductBridalBouquet  ProductName = "Hoa cầm tay cô dâu"
	ProductWhiteLilies    ProductName = "Bình hoa ly trắng"
	ProductOpeningStand   ProductName = "Kệ hoa khai trương"
	ProductCondolenceRing ProductName = "Vòng hoa chia buồn"
	ProductOrchidPot      ProductName = "Chậu lan hồ điệp"
)

// Fixture is a predefined catalog for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Categories returns the category names included in this fixture.
	Categories() []CategoryName

	// Products returns the products included in this fixture.
	Products() []ProductSpec
}

type fixture struct {
	name       string
	categories []CategoryName
	products   []ProductSpec
}

func (f *fixture) Name() string               { return f.name }
func (f *fixture) Categories() []CategoryName { return f.categories }
func (f *fixture) Products() []ProductSpec    { return f.products }

// Predefined fixtures.
var (
	// FixtureMinimal has one category with two products.
	FixtureMinimal = &fixture{
		name:       "Minimal",
		categories: []CategoryName{CategoryRoses},
		products: []ProductSpec{
			{Name: ProductRedRoses, Category: CategoryRoses, Price: 350000},
			{Name: ProductPinkRoses, Category: CategoryRoses, Price: 450000},
		},
	}

	// FixtureShop is a small shop covering every occasion.
	FixtureShop = &fixture{
		name: "Shop",
		categories: []CategoryName{
			CategoryBirthday,
			CategoryWedding,
			CategoryOpening,
			CategoryCondolence,
			CategoryRoses,
			CategoryOrchids,
		},
		products: []ProductSpec{
			{Name: ProductRedRoses, Category: CategoryRoses, Price: 350000},
			{Name: ProductPinkRoses, Category: CategoryRoses, Price: 450000},
			{Name: ProductRoseBox, Category: CategoryRoses, Price: 900000},
			{Name: ProductBirthdayBasket, Category: CategoryBirthday, Price: 550000},
			{Name: ProductSunflowers, Category: CategoryBirthday, Price: 300000},
			{Name: ProductBridalBouquet, Category: CategoryWedding, Price: 800000},
			{Name: ProductWhiteLilies, Category: CategoryWedding, Price: 650000},
			{Name: ProductOpeningStand, Category: CategoryOpening, Price: 1500000},
			{Name: ProductCondolenceRing, Category: CategoryCondolence, Price: 1200000},
			{Name: ProductOrchidPot, Category: CategoryOrchids, Price: 1100000},
		},
	}
)
