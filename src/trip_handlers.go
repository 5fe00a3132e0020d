package main

import (
	"bfn/src/config"
	"bfn/src/db"
	"bfn/src/lib/aws"
	"bfn/src/models"
	"bfn/src/types"
	"bfn/src/utils"
	"errors"
	"io"
	"log"
	"math"
	"mime/multipart"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type tripCatalogRow struct {
	models.Trip
	BatchID          *uint    `json:"-"`
	BatchFromDate    *int64   `json:"-"`
	BatchToDate      *int64   `json:"-"`
	BatchPrice       *float64 `json:"-"`
	EarliestFromDate *int64   `json:"-"`
	LatestToDate     *int64   `json:"-"`
}

type batchListingRow struct {
	models.Batch
	TotalCount int64 `json:"-"`
}

func tripHandlers(g *gin.RouterGroup) {
	g.GET("", func(ctx *gin.Context) {
		gdb := db.GetDb()
		var rows []tripCatalogRow
		err := gdb.Raw(`
			SELECT t.*,
				lb.id AS batch_id,
				lb.from_date AS batch_from_date,
				lb.to_date AS batch_to_date,
				lb.price AS batch_price,
				d.earliest_from_date,
				d.latest_to_date
			FROM "trips" t
			LEFT JOIN LATERAL (
				SELECT id, from_date, to_date, price
				FROM "batches"
				WHERE trip_id = t.id AND status = true AND deleted_at IS NULL
				ORDER BY price ASC, from_date ASC
				LIMIT 1
			) lb ON true
			LEFT JOIN LATERAL (
				SELECT MIN(from_date) AS earliest_from_date, MAX(to_date) AS latest_to_date
				FROM "batches"
				WHERE trip_id = t.id AND status = true AND deleted_at IS NULL
			) d ON true
			WHERE t.status = true AND t.deleted_at IS NULL
			ORDER BY t.id ASC`).
			Scan(&rows).
			Error
		if err != nil {
			log.Printf("Error loading trip catalog: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}

		store := aws.GetObjectStore()
		data := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			var imageUrl *string
			if len(row.Images) > 0 {
				url, err := store.SignedURL(ctx, row.Images[0], config.SIGNED_URL_TTL_SECONDS*time.Second)
				if err == nil {
					imageUrl = &url
				}
			}
			var lowestBatch gin.H
			if row.BatchID != nil {
				lowestBatch = gin.H{
					"id":        *row.BatchID,
					"from_date": row.BatchFromDate,
					"to_date":   row.BatchToDate,
					"price":     row.BatchPrice,
				}
			}
			data = append(data, gin.H{
				"trip":             row.Trip,
				"lowestBatch":      lowestBatch,
				"earliestFromDate": row.EarliestFromDate,
				"latestToDate":     row.LatestToDate,
				"imageUrl":         imageUrl,
			})
		}
		ctx.JSON(200, gin.H{"data": data})
	})
	g.GET("/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		gdb := db.GetDb()
		var row tripCatalogRow
		res := gdb.Raw(`
			SELECT t.*,
				lb.id AS batch_id,
				lb.from_date AS batch_from_date,
				lb.to_date AS batch_to_date,
				lb.price AS batch_price,
				d.earliest_from_date,
				d.latest_to_date
			FROM "trips" t
			LEFT JOIN LATERAL (
				SELECT id, from_date, to_date, price
				FROM "batches"
				WHERE trip_id = t.id AND status = true AND deleted_at IS NULL
				ORDER BY price ASC, from_date ASC
				LIMIT 1
			) lb ON true
			LEFT JOIN LATERAL (
				SELECT MIN(from_date) AS earliest_from_date, MAX(to_date) AS latest_to_date
				FROM "batches"
				WHERE trip_id = t.id AND status = true AND deleted_at IS NULL
			) d ON true
			WHERE t.id = ? AND t.status = true AND t.deleted_at IS NULL`,
			params.ID).
			Scan(&row)
		if res.Error != nil {
			ctx.JSON(500, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			ctx.JSON(404, gin.H{"error": "trip not found"})
			return
		}
		store := aws.GetObjectStore()
		var imageUrl *string
		if len(row.Images) > 0 {
			url, err := store.SignedURL(ctx, row.Images[0], config.SIGNED_URL_TTL_SECONDS*time.Second)
			if err == nil {
				imageUrl = &url
			}
		}
		var lowestBatch gin.H
		if row.BatchID != nil {
			lowestBatch = gin.H{
				"id":        *row.BatchID,
				"from_date": row.BatchFromDate,
				"to_date":   row.BatchToDate,
				"price":     row.BatchPrice,
			}
		}
		ctx.JSON(200, gin.H{"data": gin.H{
			"trip":             row.Trip,
			"lowestBatch":      lowestBatch,
			"earliestFromDate": row.EarliestFromDate,
			"latestToDate":     row.LatestToDate,
			"imageUrl":         imageUrl,
		}})
	})
	g.GET("/:id/batches", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var query types.BatchListingQuery
		if err := ctx.ShouldBindQuery(&query); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if query.Page < 1 {
			query.Page = 1
		}
		limit := config.BATCH_PAGE_SIZE
		offset := (query.Page - 1) * limit
		gdb := db.GetDb()

		var totalBatches int64
		batches := []models.Batch{}
		if query.Month != nil {
			var rows []batchListingRow
			err := gdb.Raw(`
				SELECT b.*, COUNT(*) OVER() AS total_count
				FROM "batches" b
				WHERE b.trip_id = ? AND b.status = true AND b.deleted_at IS NULL
					AND EXTRACT(MONTH FROM to_timestamp(b.from_date)) = ?
				ORDER BY b.price ASC, b.from_date ASC
				LIMIT ? OFFSET ?`,
				params.ID, *query.Month, limit, offset).
				Scan(&rows).
				Error
			if err != nil {
				log.Printf("Error loading batches for trip %d: %s\n", params.ID, err.Error())
				ctx.JSON(500, gin.H{"error": err.Error()})
				return
			}
			for _, row := range rows {
				totalBatches = row.TotalCount
				batches = append(batches, row.Batch)
			}
		} else {
			if err := gdb.
				Model(&models.Batch{}).
				Where("trip_id = ? AND status = true", params.ID).
				Count(&totalBatches).
				Error; err != nil {
				ctx.JSON(500, gin.H{"error": err.Error()})
				return
			}
			if err := gdb.
				Where("trip_id = ? AND status = true", params.ID).
				Order("price ASC, from_date ASC").
				Limit(limit).
				Offset(offset).
				Find(&batches).
				Error; err != nil {
				ctx.JSON(500, gin.H{"error": err.Error()})
				return
			}
		}
		totalPages := int(math.Ceil(float64(totalBatches) / float64(limit)))
		ctx.JSON(200, gin.H{
			"data":         batches,
			"totalBatches": totalBatches,
			"totalPages":   totalPages,
			"page":         query.Page,
			"limit":        limit,
		})
	})
	g.POST("/enquire", func(ctx *gin.Context) {
		var body types.CreateEnquiryRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		lead := models.Lead{
			Type:       body.Type,
			Name:       body.Name,
			Location:   body.Location,
			Travellers: body.Travellers,
			Days:       body.Days,
			Email:      body.Email,
			Phone:      body.Phone,
			Message:    body.Message,
			Budget:     body.Budget,
		}
		gdb := db.GetDb()
		err := gdb.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&lead).Error
		})
		if err != nil {
			log.Printf("Error saving enquiry: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(201, gin.H{"data": lead.ID})
	})
}

func adminTripHandlers(g *gin.RouterGroup) {
	g.GET("", func(ctx *gin.Context) {
		var query types.PageQuery
		if err := ctx.ShouldBindQuery(&query); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		offset := (query.Page - 1) * query.Limit
		gdb := db.GetDb()
		var total int64
		if err := gdb.Raw(
			`SELECT count(*) FROM "trips" WHERE deleted_at IS NULL AND (? = '' OR destination_name ILIKE ?)`,
			query.Search, "%"+query.Search+"%").
			Scan(&total).
			Error; err != nil {
			log.Printf("Error counting trips: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		var rows []tripCatalogRow
		err := gdb.Raw(`
			SELECT t.*, d.earliest_from_date, d.latest_to_date
			FROM "trips" t
			LEFT JOIN LATERAL (
				SELECT MIN(from_date) AS earliest_from_date, MAX(to_date) AS latest_to_date
				FROM "batches"
				WHERE trip_id = t.id AND deleted_at IS NULL
			) d ON true
			WHERE t.deleted_at IS NULL AND (? = '' OR t.destination_name ILIKE ?)
			ORDER BY t.created_at DESC
			LIMIT ? OFFSET ?`,
			query.Search, "%"+query.Search+"%", query.Limit, offset).
			Scan(&rows).
			Error
		if err != nil {
			log.Printf("Error listing trips: %s\n", err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		data := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			data = append(data, gin.H{
				"trip":             row.Trip,
				"earliestFromDate": row.EarliestFromDate,
				"latestToDate":     row.LatestToDate,
			})
		}
		totalPages := int(math.Ceil(float64(total) / float64(query.Limit)))
		ctx.JSON(200, gin.H{
			"data":       data,
			"total":      total,
			"totalPages": totalPages,
			"page":       query.Page,
			"limit":      query.Limit,
		})
	})
	g.GET("/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		gdb := db.GetDb()
		var trip models.Trip
		if err := gdb.
			Where(&models.Trip{ID: params.ID}).
			Preload("Batches").
			First(&trip).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(404, gin.H{"error": "trip not found"})
				return
			}
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(200, gin.H{"data": trip})
	})
	g.POST("", func(ctx *gin.Context) {
		var body types.CreateTripRequestBody
		if err := ctx.ShouldBind(&body); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var itinerary *types.AssetUpload
		images := []types.AssetUpload{}
		form, err := ctx.MultipartForm()
		if err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		readUpload := func(fh *multipart.FileHeader) (*types.AssetUpload, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			defer f.Close()
			buf, err := io.ReadAll(f)
			if err != nil {
				return nil, err
			}
			return &types.AssetUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Body:        buf,
			}, nil
		}
		files := form.File["itinerary"]
		if len(files) != 1 {
			ctx.JSON(400, gin.H{"error": "exactly one itinerary file is required"})
			return
		}
		itinerary, err = readUpload(files[0])
		if err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if len(form.File["images"]) == 0 {
			ctx.JSON(400, gin.H{"error": "at least one image is required"})
			return
		}
		for _, fh := range form.File["images"] {
			img, err := readUpload(fh)
			if err != nil {
				ctx.JSON(400, gin.H{"error": err.Error()})
				return
			}
			images = append(images, *img)
		}

		trip, err := utils.CreateTripWithAssets(ctx, &body, itinerary, images)
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrTripExists):
				ctx.JSON(409, gin.H{"error": err.Error()})
			default:
				ctx.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		ctx.JSON(201, gin.H{"data": trip})
	})
	g.DELETE("/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := utils.DeleteTripCascade(params.ID); err != nil {
			if errors.Is(err, utils.ErrTripNotFound) {
				ctx.JSON(404, gin.H{"error": err.Error()})
				return
			}
			log.Printf("Error deleting trip %d: %s\n", params.ID, err.Error())
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(200, gin.H{"data": params.ID})
	})
}
