package configs

import (
	"log"

	"backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// สร้าง admin ครั้งแรก
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("⚠️ skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("ℹ️ admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}

// SeedDemo = สาขา + โต๊ะ + เมนูตัวอย่าง ไว้ลองระบบ (เปิดด้วย SEED_DEMO=1)
func SeedDemo() error {
	db := DB()

	branch := entity.Branch{Name: "Main Branch", Address: "Bangkok"}
	if err := db.Where(entity.Branch{Name: branch.Name}).FirstOrCreate(&branch).Error; err != nil {
		return err
	}

	for n := 1; n <= 8; n++ {
		t := entity.Table{Number: n, BranchID: branch.ID, Status: entity.TableAvailable}
		if err := db.Where(entity.Table{Number: n, BranchID: branch.ID}).FirstOrCreate(&t).Error; err != nil {
			return err
		}
	}

	food := entity.MenuCategory{Name: "Main Dish"}
	drink := entity.MenuCategory{Name: "Drink"}
	db.Where(entity.MenuCategory{Name: food.Name}).FirstOrCreate(&food)
	db.Where(entity.MenuCategory{Name: drink.Name}).FirstOrCreate(&drink)

	menus := []entity.Menu{
		{Name: "Grilled Chicken Rice", Price: 45000, Available: true, CategoryID: food.ID, BranchID: branch.ID},
		{Name: "Beef Noodle Soup", Price: 65000, Available: true, CategoryID: food.ID, BranchID: branch.ID},
		{Name: "Iced Tea", Price: 15000, Available: true, CategoryID: drink.ID, BranchID: branch.ID},
	}
	for _, m := range menus {
		if err := db.Where(entity.Menu{Name: m.Name, BranchID: branch.ID}).FirstOrCreate(&m).Error; err != nil {
			return err
		}
	}

	log.Println("ℹ️ demo data seeded for branch", branch.ID)
	return nil
}
