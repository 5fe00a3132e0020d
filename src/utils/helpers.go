package utils

import (
	"bfn/src/db"
	"bfn/src/lib/aws"
	"bfn/src/models"
	"bfn/src/types"
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strconv"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrTripExists       = errors.New("a trip with this name already exists")
	ErrTripNotFound     = errors.New("trip not found")
	ErrBatchNotFound    = errors.New("batch not found")
	ErrBatchNameTaken   = errors.New("a batch with this name already exists")
	ErrBatchHasBookings = errors.New("deleting a batch with bookings is not allowed")
	ErrNoSeatsLeft      = errors.New("batch has no more seats available")
	ErrCouponCodeTaken  = errors.New("a coupon with this code already exists")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

func ItineraryObjectKey(tripName, filename string) string {
	return fmt.Sprintf("itineraries/%s_itinerary%s", slug.Make(tripName), path.Ext(filename))
}

func TripImageObjectKey(tripName string, index int, filename string) string {
	return fmt.Sprintf("trips/%s_%d%s", slug.Make(tripName), index, path.Ext(filename))
}

// BuildItinerary renders the day-by-day plan as plain text. Days with no
// entry are skipped.
func BuildItinerary(days int, entries map[string]types.DayEntry) string {
	var sb bytes.Buffer
	for i := 1; i <= days; i++ {
		entry, ok := entries[strconv.Itoa(i)]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "Day %d: %s\n%s\n\n", i, entry.Title, entry.Content)
	}
	return sb.String()
}

// CreateTripWithAssets uploads the trip's assets one by one and then
// inserts the trip row. Uploads happen before the insert so a duplicate
// name fails fast with nothing stored. If the insert fails after uploads
// succeeded, every stored object is deleted best-effort before returning.
func CreateTripWithAssets(ctx context.Context, params *types.CreateTripRequestBody, itineraryFile *types.AssetUpload, images []types.AssetUpload) (*models.Trip, error) {
	entries := map[string]types.DayEntry{}
	if err := json.Unmarshal([]byte(params.DaysData), &entries); err != nil {
		log.Printf("Error parsing daysData: %s\n", err.Error())
		return nil, fmt.Errorf("invalid daysData payload: %w", err)
	}

	gdb := db.GetDb()
	var count int64
	if err := gdb.
		Model(&models.Trip{}).
		Where(&models.Trip{DestinationName: params.Name}).
		Count(&count).
		Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrTripExists
	}

	store := aws.GetObjectStore()
	uploadedKeys := []string{}
	cleanup := func() {
		for _, key := range uploadedKeys {
			if err := store.Delete(ctx, key); err != nil {
				log.Printf("Could not remove object [%s] while unwinding trip creation: %s\n", key, err.Error())
			}
		}
	}

	itineraryKey := ""
	if itineraryFile != nil {
		itineraryKey = ItineraryObjectKey(params.Name, itineraryFile.Filename)
		if err := store.Put(ctx, itineraryKey, bytes.NewReader(itineraryFile.Body), itineraryFile.ContentType); err != nil {
			cleanup()
			return nil, err
		}
		uploadedKeys = append(uploadedKeys, itineraryKey)
	}
	imageKeys := []string{}
	for i, img := range images {
		key := TripImageObjectKey(params.Name, i+1, img.Filename)
		if err := store.Put(ctx, key, bytes.NewReader(img.Body), img.ContentType); err != nil {
			cleanup()
			return nil, err
		}
		uploadedKeys = append(uploadedKeys, key)
		imageKeys = append(imageKeys, key)
	}

	itineraryText := BuildItinerary(params.NumberOfDays, entries)
	if itineraryText == "" {
		itineraryText = itineraryKey
	}
	trip := models.Trip{
		DestinationName: params.Name,
		Description:     params.Description,
		Itinerary:       itineraryText,
		Destinations:    params.Destinations,
		PhysicalRating:  params.PhysicalRating,
		Days:            params.Days,
		Nights:          params.Nights,
		Inclusions:      params.Inclusions,
		Exclusions:      params.Exclusions,
		ItineraryKey:    itineraryKey,
		Images:          imageKeys,
	}
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Trip insert failed, removing %d stored objects: %s\n", len(uploadedKeys), err.Error())
		cleanup()
		return nil, err
	}
	return &trip, nil
}

// DeleteTripCascade removes a trip with its batches and their bookings in
// one transaction. A missing trip rolls everything back.
func DeleteTripCascade(id uint) error {
	gdb := db.GetDb()
	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM "bookings" WHERE batch_id IN (SELECT id FROM "batches" WHERE trip_id = ?)`,
			id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM "batches" WHERE trip_id = ?`, id).Error; err != nil {
			return err
		}
		var deleted []models.Trip
		if err := tx.Raw(`DELETE FROM "trips" WHERE id = ? RETURNING *`, id).Scan(&deleted).Error; err != nil {
			return err
		}
		if len(deleted) == 0 {
			return ErrTripNotFound
		}
		return nil
	})
}

// CreateBooking records a booking against a batch. Capacity is claimed
// with a conditional counter update inside the same transaction, so two
// concurrent requests can never both take the last seats.
func CreateBooking(params *types.CreateBookingRequestBody) (*models.Booking, error) {
	booking := models.Booking{
		UserID:         params.UserID,
		BatchID:        params.BatchID,
		Name:           params.FullName,
		PhoneNumber:    params.Number,
		GuardianNumber: params.GuardianNumber,
		Email:          params.Email,
		Payment:        params.Payment,
		Travellers:     params.Travellers,
		RoomType:       params.RoomType,
		InvoiceID:      uuid.NewString(),
	}
	gdb := db.GetDb()
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var batch models.Batch
		if err := tx.Where(&models.Batch{ID: params.BatchID}).First(&batch).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBatchNotFound
			}
			return err
		}
		res := tx.Exec(
			`UPDATE "batches" SET booked = booked + ? WHERE id = ? AND status = true AND deleted_at IS NULL AND booked + ? <= max_adventurers`,
			params.Travellers, params.BatchID, params.Travellers,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoSeatsLeft
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("CreateBooking failed: %s\n", err.Error())
		return nil, err
	}
	return &booking, nil
}

func EncryptMessage(key []byte, message string) (string, error) {
	plaintext := []byte(message)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	cipherText := gcm.Seal(nonce, nonce, plaintext, nil)
	encodedString := hex.EncodeToString(cipherText)

	return encodedString, nil
}

func DecryptMessage(key []byte, message string) (*string, error) {
	cipherText, err := hex.DecodeString(message)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	decryptedData, err := gcm.Open(nil, cipherText[:gcm.NonceSize()], cipherText[gcm.NonceSize():], nil)
	if err != nil {
		return nil, err
	}
	decodedString := string(decryptedData)

	return &decodedString, nil
}
