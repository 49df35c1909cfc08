package repository

import "gorm.io/gorm"

type userAccountModel struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	Email        string `gorm:"column:email;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash"`
	Role         string `gorm:"column:role"`
}

func (userAccountModel) TableName() string { return "user_accounts" }

// Migrate creates or updates every table the core owns. The postgres
// overlap constraint is installed separately by the database package.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&guestModel{},
		&customerModel{},
		&userAccountModel{},
		&roomTypeModel{},
		&roomModel{},
		&preBookingModel{},
		&bookingModel{},
		&paymentModel{},
		&adjustmentModel{},
		&serviceCatalogModel{},
		&serviceUsageModel{},
	)
}

// SeedAccount inserts a dashboard login if the email is not taken.
func SeedAccount(db *gorm.DB, email, passwordHash, role string) error {
	var count int64
	if err := db.Model(&userAccountModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&userAccountModel{Email: email, PasswordHash: passwordHash, Role: role}).Error
}

// SeedDemo loads a small demo dataset for local development. It is
// idempotent: a database that already has rooms is left untouched.
func SeedDemo(db *gorm.DB) error {
	var rooms int64
	if err := db.Model(&roomModel{}).Count(&rooms).Error; err != nil {
		return err
	}
	if rooms > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		types := []roomTypeModel{
			{Name: "Standard", DailyRate: 8000, Capacity: 2, Amenities: "wifi,tv"},
			{Name: "Deluxe", DailyRate: 12000, Capacity: 3, Amenities: "wifi,tv,minibar"},
			{Name: "Suite", DailyRate: 20000, Capacity: 4, Amenities: "wifi,tv,minibar,balcony"},
		}
		if err := tx.Create(&types).Error; err != nil {
			return err
		}

		var demoRooms []roomModel
		numbers := map[int64][]string{
			types[0].ID: {"101", "102", "103", "104"},
			types[1].ID: {"201", "202", "203"},
			types[2].ID: {"301", "302"},
		}
		for typeID, roomNumbers := range numbers {
			for _, n := range roomNumbers {
				demoRooms = append(demoRooms, roomModel{
					RoomNumber: n,
					RoomTypeID: typeID,
					BranchID:   1,
					Status:     "Available",
				})
			}
		}
		if err := tx.Create(&demoRooms).Error; err != nil {
			return err
		}

		guests := []guestModel{
			{FullName: "Aigerim Nurlanova", Email: "aigerim@example.com", Phone: "+7 701 000 0001"},
			{FullName: "Daniyar Seitkali", Email: "daniyar@example.com", Phone: "+7 701 000 0002"},
		}
		if err := tx.Create(&guests).Error; err != nil {
			return err
		}
		customers := []customerModel{
			{GuestID: guests[0].ID},
			{GuestID: guests[1].ID},
		}
		if err := tx.Create(&customers).Error; err != nil {
			return err
		}

		catalog := []serviceCatalogModel{
			{Name: "Laundry", UnitPrice: 1500},
			{Name: "Minibar", UnitPrice: 900},
			{Name: "Spa", UnitPrice: 5000},
			{Name: "Airport Transfer", UnitPrice: 4000},
		}
		return tx.Create(&catalog).Error
	})
}
