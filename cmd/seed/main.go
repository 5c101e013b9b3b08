package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"petcare/internal/database"
	"petcare/internal/domain"
)

func main() {
	db, err := database.Connect("petcare.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM trainer_availabilities")
	db.Exec("DELETE FROM pets")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM email_verification_codes")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	now := time.Now()
	verified := now

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:           "admin@petcare.pt",
		PasswordHash:    string(adminHash),
		Role:            domain.RoleAdmin,
		Name:            "Admin",
		EmailVerified:   true,
		EmailVerifiedAt: &verified,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@petcare.pt / admin123")

	trainers := []domain.User{}
	trainerNames := []string{"Marta Silva", "Joao Costa", "Ines Ferreira"}
	for i, name := range trainerNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("trainer123"), bcrypt.DefaultCost)
		trainer := domain.User{
			Email:           fmt.Sprintf("trainer%d@petcare.pt", i+1),
			PasswordHash:    string(hash),
			Role:            domain.RoleTrainer,
			Name:            name,
			Phone:           fmt.Sprintf("+351 91 000 00%02d", i+1),
			EmailVerified:   true,
			EmailVerifiedAt: &verified,
		}
		db.Create(&trainer)
		trainers = append(trainers, trainer)
	}

	customers := []domain.User{}
	customerNames := []string{"Ana Santos", "Pedro Almeida", "Rita Gomes"}
	for i, name := range customerNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
		birth := time.Date(1990+i*3, time.March, 12, 0, 0, 0, 0, time.UTC)
		customer := domain.User{
			Email:           fmt.Sprintf("customer%d@example.com", i+1),
			PasswordHash:    string(hash),
			Role:            domain.RoleCustomer,
			Name:            name,
			Phone:           fmt.Sprintf("+351 93 555 01%02d", i+1),
			Address:         fmt.Sprintf("Rua das Flores %d, Lisboa", i+10),
			NIF:             fmt.Sprintf("23456789%d", i),
			BirthDate:       &birth,
			EmailVerified:   true,
			EmailVerifiedAt: &verified,
		}
		db.Create(&customer)
		customers = append(customers, customer)
	}

	// ================== SERVICES ==================
	log.Println("Creating services...")
	services := []domain.Service{
		{Name: "Full Grooming", Description: "Bath, haircut, nails and ear cleaning", Price: 45, Duration: 90, Capacity: 2, Category: domain.CategoryGrooming},
		{Name: "Bath & Brush", Description: "Quick wash and brush-out", Price: 25, Duration: 45, Capacity: 3, Category: domain.CategoryGrooming},
		{Name: "Obedience Training", Description: "One-on-one basic obedience session", Price: 40, Duration: 60, Capacity: 1, Category: domain.CategoryTraining},
		{Name: "Puppy Socialization", Description: "Group session for puppies under one year", Price: 20, Duration: 60, Capacity: 6, Category: domain.CategoryTraining},
		{Name: "Full Day Daycare", Description: "Supervised play, walks and nap time", Price: 30, Duration: 480, Capacity: 10, Category: domain.CategoryDaycare},
		{Name: "Wellness Checkup", Description: "General vet exam with vaccination review", Price: 55, Duration: 30, Capacity: 1, Category: domain.CategoryVeterinary},
	}
	for i := range services {
		db.Create(&services[i])
	}

	// ================== PETS ==================
	log.Println("Creating pets...")
	pets := []domain.Pet{
		{OwnerID: customers[0].ID, Name: "Bobi", Species: "dog", Breed: "Labrador", Age: 3, Weight: 28},
		{OwnerID: customers[0].ID, Name: "Mia", Species: "cat", Breed: "Siamese", Age: 2, Weight: 4},
		{OwnerID: customers[1].ID, Name: "Thor", Species: "dog", Breed: "German Shepherd", Age: 5, Weight: 34, MedicalInfo: "Hip dysplasia, avoid jumps"},
		{OwnerID: customers[2].ID, Name: "Nina", Species: "dog", Breed: "Poodle", Age: 1, Weight: 7, SpecialNotes: "Nervous around large dogs"},
	}
	for i := range pets {
		db.Create(&pets[i])
	}

	// ================== TRAINER AVAILABILITY ==================
	log.Println("Creating trainer availability...")
	for _, trainer := range trainers {
		// Monday to Friday, standard working hours
		for day := 1; day <= 5; day++ {
			db.Create(&domain.TrainerAvailability{
				TrainerID: trainer.ID,
				DayOfWeek: day,
				StartTime: "09:00",
				EndTime:   "17:00",
			})
		}
	}
	// first trainer also works Saturday mornings
	db.Create(&domain.TrainerAvailability{
		TrainerID: trainers[0].ID,
		DayOfWeek: 6,
		StartTime: "10:00",
		EndTime:   "13:00",
	})

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	nextMonday := now.AddDate(0, 0, (8-int(now.Weekday()))%7)
	if nextMonday.Equal(now) {
		nextMonday = nextMonday.AddDate(0, 0, 7)
	}
	at := func(base time.Time, hour int) time.Time {
		return time.Date(base.Year(), base.Month(), base.Day(), hour, 0, 0, 0, time.Local)
	}

	trainerID := trainers[0].ID
	bookings := []domain.Booking{
		{
			UserID:    customers[0].ID,
			PetID:     pets[0].ID,
			ServiceID: services[2].ID,
			TrainerID: &trainerID,
			StartTime: at(nextMonday, 10),
			EndTime:   at(nextMonday, 11),
			Status:    domain.BookingConfirmed,
		},
		{
			UserID:    customers[1].ID,
			PetID:     pets[2].ID,
			ServiceID: services[0].ID,
			StartTime: at(nextMonday, 14),
			EndTime:   at(nextMonday, 14).Add(90 * time.Minute),
			Status:    domain.BookingPending,
			Notes:     "First visit",
		},
		{
			UserID:    customers[2].ID,
			PetID:     pets[3].ID,
			ServiceID: services[5].ID,
			StartTime: at(now.AddDate(0, 0, -7), 11),
			EndTime:   at(now.AddDate(0, 0, -7), 11).Add(30 * time.Minute),
			Status:    domain.BookingCompleted,
		},
	}
	for i := range bookings {
		db.Create(&bookings[i])
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")
	db.Create(&domain.Review{
		BookingID: bookings[2].ID,
		ServiceID: bookings[2].ServiceID,
		UserID:    bookings[2].UserID,
		Rating:    5,
		Comment:   "Nina came back happy, the vet was great with her.",
	})

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Admin:     admin@petcare.pt / admin123")
	log.Println("Trainers:  trainer1..3@petcare.pt / trainer123")
	log.Println("Customers: customer1..3@example.com / customer123")
}
