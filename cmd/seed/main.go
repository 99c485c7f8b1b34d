package main

import (
	"laptophub/internal/config"
	"laptophub/internal/domain/model"
	"laptophub/internal/infra/db"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// 開発用のカタログ初期データ
var sampleLaptops = []model.Laptop{
	{
		Name: "Lenovo IdeaPad 3", Brand: "Lenovo",
		Price: 45000, OriginalPrice: 55000,
		Image:       "https://images.pexels.com/photos/7974/pexels-photo.jpg?auto=compress&w=400",
		Description: "Perfect for everyday computing with reliable performance",
		Processor:   "AMD Ryzen 5 5500U", RAM: "8GB", Storage: "256GB SSD",
		Display: "15.6\" FHD", OS: "Windows 11 Home",
		InStock: true, Rating: 4.1, Reviews: 334, Discount: 18,
	},
	{
		Name: "HP Pavilion 15", Brand: "HP",
		Price: 52000, OriginalPrice: 65000,
		Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?auto=compress&w=400",
		Description: "Stylish design with powerful performance for work and entertainment",
		Processor:   "AMD Ryzen 5 5600H", RAM: "8GB", Storage: "256GB SSD",
		Display: "15.6\" FHD", OS: "Windows 11 Home",
		InStock: true, Rating: 4.2, Reviews: 423, Discount: 20,
	},
	{
		Name: "Dell Inspiron 15 300", Brand: "Dell",
		Price: 48000, OriginalPrice: 60000,
		Image:       "https://images.unsplash.com/photo-1519389950473-47ba0277781c?auto=compress&w=400",
		Description: "Reliable performance for students and professionals",
		Processor:   "Intel i3-1115G4", RAM: "8GB", Storage: "256GB SSD",
		Display: "15.6\" HD", OS: "Windows 11 Home",
		InStock: true, Rating: 4.2, Reviews: 445, Discount: 20,
	},
	{
		Name: "ASUS VivoBook S15", Brand: "ASUS",
		Price: 58000, OriginalPrice: 72000,
		Image:       "https://images.pexels.com/photos/2115217/pexels-photo-2115217.jpeg?auto=compress&w=400",
		Description: "Slim and lightweight with premium features",
		Processor:   "Intel i5-1135G7", RAM: "8GB", Storage: "512GB SSD",
		Display: "15.6\" FHD", OS: "Windows 11 Home",
		InStock: true, Rating: 4.3, Reviews: 567, Discount: 19,
	},
	{
		Name: "Acer Swift 3", Brand: "Acer",
		Price: 55000, OriginalPrice: 68000,
		Image:       "https://images.unsplash.com/photo-1519389950473-47ba0277781c?auto=compress&w=400",
		Description: "Ultra-portable with all-day battery life",
		Processor:   "Intel i5-1135G7", RAM: "8GB", Storage: "512GB SSD",
		Display: "14\" FHD", OS: "Windows 11 Home",
		InStock: true, Rating: 4.4, Reviews: 389, Discount: 19,
	},
	{
		Name: "MacBook Air M1", Brand: "Apple",
		Price: 120000, OriginalPrice: 140000,
		Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?auto=compress&w=400",
		Description: "Revolutionary performance with Apple Silicon",
		Processor:   "Apple M1", RAM: "8GB", Storage: "256GB SSD",
		Display: "13.3\" Retina", OS: "macOS",
		InStock: true, IsNew: true, Rating: 4.8, Reviews: 892, Discount: 14,
	},
	{
		Name: "MSI Gaming Laptop", Brand: "MSI",
		Price: 85000, OriginalPrice: 95000,
		Image:       "https://images.pexels.com/photos/7974/pexels-photo.jpg?auto=compress&w=400",
		Description: "High-performance gaming laptop with RGB lighting",
		Processor:   "Intel i5-11400H", RAM: "16GB", Storage: "512GB SSD",
		Display: "15.6\" FHD 144Hz", OS: "Windows 11 Home",
		InStock: true, Rating: 4.5, Reviews: 234, Discount: 11,
	},
	{
		Name: "Razer Blade 15", Brand: "Razer",
		Price: 180000, OriginalPrice: 200000,
		Image:       "https://images.unsplash.com/photo-1519389950473-47ba0277781c?auto=compress&w=400",
		Description: "Premium gaming laptop with exceptional build quality",
		Processor:   "Intel i7-11800H", RAM: "16GB", Storage: "1TB SSD",
		Display: "15.6\" QHD 165Hz", OS: "Windows 11 Home",
		InStock: true, IsNew: true, Rating: 4.7, Reviews: 156, Discount: 10,
	},
}

func main() {
	_ = godotenv.Load("../.env")
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(&model.Laptop{}); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	//既存データを消してから入れ直す
	if err := gormDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Laptop{}).Error; err != nil {
		log.Fatal().Err(err).Msg("clear laptops failed")
	}

	if err := gormDB.Create(&sampleLaptops).Error; err != nil {
		log.Fatal().Err(err).Msg("seed laptops failed")
	}

	for _, l := range sampleLaptops {
		log.Info().Str("name", l.Name).Str("brand", l.Brand).Int64("price", l.Price).Msg("seeded")
	}
	log.Info().Int("count", len(sampleLaptops)).Msg("laptop seeding completed")
}
