package main

import (
	"bfn/src/db"
	"bfn/src/models"
	"bfn/src/types"
	"bfn/src/utils"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func adminBatchHandlers(g *gin.RouterGroup) {
	g.GET("", func(ctx *gin.Context) {
		var query types.PageQuery
		if err := ctx.ShouldBindQuery(&query); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		offset := (query.Page - 1) * query.Limit
		gdb := db.GetDb()
		var batches []models.Batch
		if err := gdb.
			Preload("Trip").
			Preload("Bookings").
			Order("from_date ASC").
			Limit(query.Limit).
			Offset(offset).
			Find(&batches).
			Error; err != nil {
			log.Printf("Error listing batches: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		data := make([]gin.H, 0, len(batches))
		for _, batch := range batches {
			travellers := uint(0)
			names := make([]string, 0, len(batch.Bookings))
			for _, booking := range batch.Bookings {
				travellers += booking.Travellers
				names = append(names, booking.Name)
			}
			data = append(data, gin.H{
				"batch":           batch,
				"totalTravellers": travellers,
				"bookedBy":        names,
			})
		}
		ctx.JSON(200, gin.H{"data": data, "page": query.Page, "limit": query.Limit})
	})
	g.GET("/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		gdb := db.GetDb()
		var batch models.Batch
		if err := gdb.
			Where(&models.Batch{ID: params.ID}).
			Preload("Trip").
			Preload("Bookings").
			First(&batch).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(404, gin.H{"error": "batch not found"})
				return
			}
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(200, gin.H{"data": batch})
	})
	g.POST("", func(ctx *gin.Context) {
		var body types.CreateBatchRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		batch := models.Batch{
			TripID:         body.TripID,
			BatchName:      body.BatchName,
			FromDate:       body.FromDate,
			ToDate:         body.ToDate,
			Days:           body.Days,
			Nights:         body.Nights,
			Price:          body.Price,
			Tax:            body.Tax,
			SingleRoom:     body.SingleRoom,
			DoubleRoom:     body.DoubleRoom,
			TripleRoom:     body.TripleRoom,
			MaxAdventurers: body.MaxAdventurers,
		}
		gdb := db.GetDb()
		err := gdb.Transaction(func(tx *gorm.DB) error {
			var trip models.Trip
			if err := tx.Where(&models.Trip{ID: body.TripID}).First(&trip).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.ErrTripNotFound
				}
				return err
			}
			var count int64
			if err := tx.
				Model(&models.Batch{}).
				Where(&models.Batch{BatchName: body.BatchName}).
				Count(&count).
				Error; err != nil {
				return err
			}
			if count > 0 {
				return utils.ErrBatchNameTaken
			}
			return tx.Create(&batch).Error
		})
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrTripNotFound):
				ctx.JSON(404, gin.H{"error": err.Error()})
			case errors.Is(err, utils.ErrBatchNameTaken):
				ctx.JSON(409, gin.H{"error": err.Error()})
			default:
				log.Printf("Error creating batch: %s\n", err.Error())
				ctx.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		ctx.JSON(201, gin.H{"data": batch})
	})
	g.PUT("/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateBatchRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}

		values := map[string]any{}
		if body.BatchName != nil {
			values["batch_name"] = *body.BatchName
		}
		if body.FromDate != nil {
			values["from_date"] = *body.FromDate
		}
		if body.ToDate != nil {
			values["to_date"] = *body.ToDate
		}
		if body.Days != nil {
			values["days"] = *body.Days
		}
		if body.Nights != nil {
			values["nights"] = *body.Nights
		}
		if body.Price != nil {
			values["price"] = *body.Price
		}
		if body.Tax != nil {
			values["tax"] = *body.Tax
		}
		if body.SingleRoom != nil {
			values["single_room"] = *body.SingleRoom
		}
		if body.DoubleRoom != nil {
			values["double_room"] = *body.DoubleRoom
		}
		if body.TripleRoom != nil {
			values["triple_room"] = *body.TripleRoom
		}
		if body.MaxAdventurers != nil {
			values["max_adventurers"] = *body.MaxAdventurers
		}
		if body.Status != nil {
			values["status"] = *body.Status
		}
		if len(values) == 0 {
			ctx.JSON(400, gin.H{"error": utils.ErrNoFieldsToUpdate.Error()})
			return
		}

		gdb := db.GetDb()
		var batch models.Batch
		err := gdb.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where(&models.Batch{ID: params.ID}).First(&batch).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.ErrBatchNotFound
				}
				return err
			}
			fromDate := batch.FromDate
			toDate := batch.ToDate
			if body.FromDate != nil {
				fromDate = *body.FromDate
			}
			if body.ToDate != nil {
				toDate = *body.ToDate
			}
			if toDate <= fromDate {
				return errors.New("to_date must be after from_date")
			}
			return tx.
				Model(&models.Batch{}).
				Where(&models.Batch{ID: params.ID}).
				Updates(values).
				Error
		})
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrBatchNotFound):
				ctx.JSON(404, gin.H{"error": err.Error()})
			case err.Error() == "to_date must be after from_date":
				ctx.JSON(400, gin.H{"error": err.Error()})
			default:
				log.Printf("Error updating batch %d: %s\n", params.ID, err.Error())
				ctx.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		ctx.JSON(200, gin.H{"data": params.ID})
	})
	g.DELETE("/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		gdb := db.GetDb()
		err := gdb.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.
				Model(&models.Booking{}).
				Where(&models.Booking{BatchID: params.ID}).
				Count(&count).
				Error; err != nil {
				return err
			}
			if count > 0 {
				return utils.ErrBatchHasBookings
			}
			res := tx.Delete(&models.Batch{}, params.ID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return utils.ErrBatchNotFound
			}
			return nil
		})
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrBatchHasBookings):
				ctx.JSON(409, gin.H{"error": err.Error()})
			case errors.Is(err, utils.ErrBatchNotFound):
				ctx.JSON(404, gin.H{"error": err.Error()})
			default:
				log.Printf("Error deleting batch %d: %s\n", params.ID, err.Error())
				ctx.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		ctx.JSON(200, gin.H{"data": params.ID})
	})
}
