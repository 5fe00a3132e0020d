package boot

import (
	"bfn/src/db"
	"bfn/src/models"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

func InitDb() error {
	gdb := db.GetDb()
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.Batch{},
		&models.Booking{},
		&models.Coupon{},
		&models.Banner{},
		&models.Lead{},
	)
	if err != nil {
		log.Printf("Error on AutoMigrate: %s\n", err.Error())
		return err
	}
	return nil
}

// InitScheduler starts the hourly sweep that disables coupons past their
// end date.
func InitScheduler() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Error creating scheduler: %s\n", err.Error())
		return err
	}
	_, err = s.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			gdb := db.GetDb()
			res := gdb.
				Model(&models.Coupon{}).
				Where("status = true AND end_date < ?", time.Now().Unix()).
				Update("status", false)
			if res.Error != nil {
				log.Printf("Coupon sweep failed: %s\n", res.Error.Error())
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("Coupon sweep disabled %d expired coupons\n", res.RowsAffected)
			}
		}),
	)
	if err != nil {
		log.Printf("Error scheduling coupon sweep: %s\n", err.Error())
		return err
	}
	s.Start()
	return nil
}
