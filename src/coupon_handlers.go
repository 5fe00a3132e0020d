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

func adminCouponHandlers(g *gin.RouterGroup) {
	g.GET("", func(ctx *gin.Context) {
		var query types.PageQuery
		if err := ctx.ShouldBindQuery(&query); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		offset := (query.Page - 1) * query.Limit
		gdb := db.GetDb()
		var coupons []models.Coupon
		if err := gdb.
			Order("created_at DESC").
			Limit(query.Limit).
			Offset(offset).
			Find(&coupons).
			Error; err != nil {
			log.Printf("Error listing coupons: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(200, gin.H{"data": coupons, "page": query.Page, "limit": query.Limit})
	})
	g.GET("/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		gdb := db.GetDb()
		var coupon models.Coupon
		if err := gdb.
			Where(&models.Coupon{ID: params.ID}).
			First(&coupon).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(404, gin.H{"error": "coupon not found"})
				return
			}
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(200, gin.H{"data": coupon})
	})
	g.POST("", func(ctx *gin.Context) {
		var body types.CreateCouponRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		coupon := models.Coupon{
			Code:      body.Code,
			Deduction: body.Deduction,
			StartDate: body.StartDate,
			EndDate:   body.EndDate,
		}
		gdb := db.GetDb()
		err := gdb.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.
				Model(&models.Coupon{}).
				Where(&models.Coupon{Code: body.Code}).
				Count(&count).
				Error; err != nil {
				return err
			}
			if count > 0 {
				return utils.ErrCouponCodeTaken
			}
			return tx.Create(&coupon).Error
		})
		if err != nil {
			if errors.Is(err, utils.ErrCouponCodeTaken) {
				ctx.JSON(409, gin.H{"error": err.Error()})
				return
			}
			log.Printf("Error creating coupon: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(201, gin.H{"data": coupon})
	})
	g.PUT("/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateCouponRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		values := map[string]any{}
		if body.Deduction != nil {
			values["deduction"] = *body.Deduction
		}
		if body.StartDate != nil {
			values["start_date"] = *body.StartDate
		}
		if body.EndDate != nil {
			values["end_date"] = *body.EndDate
		}
		if body.Status != nil {
			values["status"] = *body.Status
		}
		if len(values) == 0 {
			ctx.JSON(400, gin.H{"error": utils.ErrNoFieldsToUpdate.Error()})
			return
		}
		gdb := db.GetDb()
		err := gdb.Transaction(func(tx *gorm.DB) error {
			var coupon models.Coupon
			if err := tx.Where(&models.Coupon{ID: params.ID}).First(&coupon).Error; err != nil {
				return err
			}
			return tx.
				Model(&models.Coupon{}).
				Where(&models.Coupon{ID: params.ID}).
				Updates(values).
				Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(404, gin.H{"error": "coupon not found"})
				return
			}
			log.Printf("Error updating coupon %d: %s\n", params.ID, err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(200, gin.H{"data": params.ID})
	})
}
