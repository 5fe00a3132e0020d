package main

import (
	"bfn/src/config"
	"bfn/src/db"
	"bfn/src/lib"
	awslib "bfn/src/lib/aws"
	"bfn/src/models"
	"bfn/src/types"
	"bfn/src/utils"
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

func bookingHandlers(g *gin.RouterGroup) {
	g.POST("", func(ctx *gin.Context) {
		var body types.CreateBookingRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		booking, err := utils.CreateBooking(&body)
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrBatchNotFound):
				ctx.JSON(404, gin.H{"error": err.Error()})
			case errors.Is(err, utils.ErrNoSeatsLeft):
				ctx.JSON(409, gin.H{"error": err.Error()})
			default:
				ctx.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		go models.BookingCreatedProducer(booking.ID, map[string]any{
			"bookingId":  booking.ID,
			"batchId":    booking.BatchID,
			"travellers": booking.Travellers,
			"invoiceId":  booking.InvoiceID,
		})
		go func() {
			err := lib.SendMail(&lib.SendMailInput{
				From:     os.Getenv("SMTP_FROM"),
				FromName: "Barefoot Nomads",
				To:       []string{booking.Email},
				Subject:  "Your booking is confirmed",
				Body:     fmt.Sprintf("Hi %s,\n\nYour booking %s for %d travellers is confirmed.\n", booking.Name, booking.InvoiceID, booking.Travellers),
			})
			if err != nil {
				log.Printf("Error sending booking confirmation [%d]: %s\n", booking.ID, err.Error())
			}
		}()
		ctx.JSON(201, gin.H{"data": booking})
	})
	g.GET("/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		gdb := db.GetDb()
		var booking models.Booking
		if err := gdb.
			Where(&models.Booking{ID: params.ID}).
			Preload("Batch").
			Preload("Batch.Trip").
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(404, gin.H{"error": "booking not found"})
				return
			}
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(200, gin.H{"data": booking})
	})
	g.GET("/:id/voucher", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		cacheKey := fmt.Sprintf("voucher_%d", params.ID)
		rd := lib.GetRedisClient()
		if url, err := rd.Get(context.Background(), cacheKey).Result(); err == nil && url != "" {
			ctx.JSON(200, gin.H{"url": url})
			return
		}

		gdb := db.GetDb()
		var booking models.Booking
		if err := gdb.
			Where(&models.Booking{ID: params.ID}).
			Preload("Batch").
			Preload("Batch.Trip").
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(404, gin.H{"error": "booking not found"})
				return
			}
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}

		rawData := map[string]any{
			"bookingId": booking.ID,
			"invoiceId": booking.InvoiceID,
		}
		rawBytes, _ := json.Marshal(rawData)
		key, err := hex.DecodeString(os.Getenv("API_QRC_SECRET"))
		if err != nil {
			log.Printf("Could not read key from string: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		encryptedMessage, err := utils.EncryptMessage(key, string(rawBytes))
		if err != nil {
			log.Printf("Error encrypting message: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		qrc, err := qrcode.New(encryptedMessage)
		if err != nil {
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		filename := fmt.Sprintf("vouchers/%s.jpeg", booking.InvoiceID)
		filepath := path.Join(os.TempDir(), fmt.Sprintf("%s.jpeg", booking.InvoiceID))
		if err := qrc.Save(filepath); err != nil {
			log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		defer os.Remove(filepath)

		buf, err := os.ReadFile(filepath)
		if err != nil {
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		store := awslib.GetObjectStore()
		if err := store.Put(ctx, filename, bytes.NewReader(buf), "image/jpeg"); err != nil {
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		signedURL, err := store.SignedURL(ctx, filename, config.SIGNED_URL_TTL_SECONDS*time.Second)
		if err != nil {
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		rd.SetEx(context.Background(), cacheKey, signedURL, 2*time.Hour)
		ctx.JSON(200, gin.H{"url": signedURL})
	})
}

func adminBookingHandlers(g *gin.RouterGroup) {
	g.POST("/verify", func(ctx *gin.Context) {
		var body types.VerifyVoucherRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		key, err := hex.DecodeString(os.Getenv("API_QRC_SECRET"))
		if err != nil {
			log.Printf("Could not read key from string: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		decrypted, err := utils.DecryptMessage(key, body.Code)
		if err != nil {
			log.Printf("Error decrypting voucher code: %s\n", err.Error())
			ctx.JSON(400, gin.H{"error": "invalid voucher code"})
			return
		}
		var payload struct {
			BookingID uint   `json:"bookingId"`
			InvoiceID string `json:"invoiceId"`
		}
		if err := json.Unmarshal([]byte(*decrypted), &payload); err != nil {
			ctx.JSON(400, gin.H{"error": "invalid voucher code"})
			return
		}
		gdb := db.GetDb()
		var booking models.Booking
		if err := gdb.
			Where(&models.Booking{ID: payload.BookingID}).
			Preload("Batch").
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(404, gin.H{"error": "booking not found"})
				return
			}
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if booking.InvoiceID != payload.InvoiceID {
			ctx.JSON(404, gin.H{"error": "booking not found"})
			return
		}
		ctx.JSON(200, gin.H{"data": booking})
	})
}
