package main

import (
	"bfn/src/config"
	"bfn/src/db"
	"bfn/src/lib/aws"
	"bfn/src/models"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

func bannerHandlers(g *gin.RouterGroup) {
	g.GET("", func(ctx *gin.Context) {
		gdb := db.GetDb()
		var banners []models.Banner
		if err := gdb.
			Where(&models.Banner{Status: true}).
			Order("created_at DESC").
			Find(&banners).
			Error; err != nil {
			log.Printf("Error listing banners: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		store := aws.GetObjectStore()
		data := make([]gin.H, 0, len(banners))
		for _, banner := range banners {
			var imageUrl *string
			if banner.ImageKey != "" {
				url, err := store.SignedURL(ctx, banner.ImageKey, config.SIGNED_URL_TTL_SECONDS*time.Second)
				if err == nil {
					imageUrl = &url
				}
			}
			data = append(data, gin.H{
				"banner":   banner,
				"imageUrl": imageUrl,
			})
		}
		ctx.JSON(200, gin.H{"data": data})
	})
}

func adminBannerHandlers(g *gin.RouterGroup) {
	g.GET("", func(ctx *gin.Context) {
		gdb := db.GetDb()
		var banners []models.Banner
		if err := gdb.
			Order("created_at DESC").
			Find(&banners).
			Error; err != nil {
			log.Printf("Error listing banners: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(200, gin.H{"data": banners})
	})
}
