package main

import (
	"bfn/src/db"
	"bfn/src/utils"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

var bookingColumns = []string{
	"id", "user_id", "batch_id", "name", "phone_number", "guardian_number",
	"email", "payment", "travellers", "room_type", "invoice_id",
}

const bookingPayload = `{"userId":1,"batchId":1,"fullName":"Asha Verma","number":"9800000000","email":"asha@example.com","payment":24000,"travellers":2,"roomType":"double"}`

func (s *TestSuite) TestCreateBooking() {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "batches"`).
		WillReturnRows(sqlmock.NewRows(batchColumns).
			AddRow(1, 1, "MAR-1", 1772000000, 1772600000, 8, 7, 12000.0, 500.0, 2, 4, 0, 16, 10, true))
	mock.ExpectExec(`UPDATE "batches" SET booked = booked \+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectCommit()

	router := setupRouter()
	bookingHandlers(router.Group("/api/booking"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/booking", strings.NewReader(bookingPayload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 201, w.Code)
	body := w.Body.String()
	assert.Equal(s.T(), int64(100), gjson.Get(body, "data.id").Int())
	assert.NotEmpty(s.T(), gjson.Get(body, "data.invoice_id").String())
	assert.Nil(s.T(), mock.ExpectationsWereMet())
}

func (s *TestSuite) TestCreateBookingNoSeatsLeft() {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "batches"`).
		WillReturnRows(sqlmock.NewRows(batchColumns).
			AddRow(1, 1, "MAR-1", 1772000000, 1772600000, 8, 7, 12000.0, 500.0, 2, 4, 0, 16, 15, true))
	mock.ExpectExec(`UPDATE "batches" SET booked = booked \+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	router := setupRouter()
	bookingHandlers(router.Group("/api/booking"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/booking", strings.NewReader(bookingPayload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 409, w.Code)
	assert.NotEmpty(s.T(), gjson.Get(w.Body.String(), "error").String())
	assert.Nil(s.T(), mock.ExpectationsWereMet())
}

func (s *TestSuite) TestCreateBookingBatchNotFound() {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "batches"`).
		WillReturnRows(sqlmock.NewRows(batchColumns))
	mock.ExpectRollback()

	router := setupRouter()
	bookingHandlers(router.Group("/api/booking"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/booking", strings.NewReader(bookingPayload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 404, w.Code)
	assert.Nil(s.T(), mock.ExpectationsWereMet())
}

func (s *TestSuite) TestGetBooking() {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(100, 1, 1, "Asha Verma", "9800000000", "", "asha@example.com", 24000.0, 2, "double", "inv-1"))
	mock.ExpectQuery(`SELECT \* FROM "batches"`).
		WillReturnRows(sqlmock.NewRows(batchColumns).
			AddRow(1, 1, "MAR-1", 1772000000, 1772600000, 8, 7, 12000.0, 500.0, 2, 4, 0, 16, 10, true))
	mock.ExpectQuery(`SELECT \* FROM "trips"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "destination_name"}).AddRow(1, "Ladakh Expedition"))

	router := setupRouter()
	bookingHandlers(router.Group("/api/booking"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/booking/100", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	body := w.Body.String()
	assert.Equal(s.T(), "Asha Verma", gjson.Get(body, "data.name").String())
	assert.Equal(s.T(), "Ladakh Expedition", gjson.Get(body, "data.batch.trip.destination_name").String())
}

const voucherSecret = "6368616e676520746869732070617373776f726420746f206120736563726574"

func (s *TestSuite) TestVerifyVoucher() {
	os.Setenv("API_QRC_SECRET", voucherSecret)
	defer os.Unsetenv("API_QRC_SECRET")

	d, mock := NewMockDB()
	db.NewDB(d)

	key, _ := hex.DecodeString(voucherSecret)
	code, err := utils.EncryptMessage(key, `{"bookingId":100,"invoiceId":"inv-1"}`)
	assert.Nil(s.T(), err)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(100, 1, 1, "Asha Verma", "9800000000", "", "asha@example.com", 24000.0, 2, "double", "inv-1"))
	mock.ExpectQuery(`SELECT \* FROM "batches"`).
		WillReturnRows(sqlmock.NewRows(batchColumns).
			AddRow(1, 1, "MAR-1", 1772000000, 1772600000, 8, 7, 12000.0, 500.0, 2, 4, 0, 16, 10, true))

	router := setupRouter()
	adminBookingHandlers(router.Group("/api/admin/bookings"))

	w := httptest.NewRecorder()
	payload := fmt.Sprintf(`{"code":%q}`, code)
	req, _ := http.NewRequest("POST", "/api/admin/bookings/verify", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	body := w.Body.String()
	assert.Equal(s.T(), "inv-1", gjson.Get(body, "data.invoice_id").String())
	assert.Equal(s.T(), "Asha Verma", gjson.Get(body, "data.name").String())
	assert.Nil(s.T(), mock.ExpectationsWereMet())
}

func (s *TestSuite) TestVerifyVoucherTamperedCode() {
	os.Setenv("API_QRC_SECRET", voucherSecret)
	defer os.Unsetenv("API_QRC_SECRET")

	d, _ := NewMockDB()
	db.NewDB(d)

	key, _ := hex.DecodeString(voucherSecret)
	code, _ := utils.EncryptMessage(key, `{"bookingId":100,"invoiceId":"inv-1"}`)
	tampered := code[:len(code)-1] + "0"
	if strings.HasSuffix(code, "0") {
		tampered = code[:len(code)-1] + "1"
	}

	router := setupRouter()
	adminBookingHandlers(router.Group("/api/admin/bookings"))

	w := httptest.NewRecorder()
	payload := fmt.Sprintf(`{"code":%q}`, tampered)
	req, _ := http.NewRequest("POST", "/api/admin/bookings/verify", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 400, w.Code)
	assert.NotEmpty(s.T(), gjson.Get(w.Body.String(), "error").String())
}

func (s *TestSuite) TestVerifyVoucherInvoiceMismatch() {
	os.Setenv("API_QRC_SECRET", voucherSecret)
	defer os.Unsetenv("API_QRC_SECRET")

	d, mock := NewMockDB()
	db.NewDB(d)

	key, _ := hex.DecodeString(voucherSecret)
	code, _ := utils.EncryptMessage(key, `{"bookingId":100,"invoiceId":"inv-stale"}`)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(100, 1, 1, "Asha Verma", "9800000000", "", "asha@example.com", 24000.0, 2, "double", "inv-1"))
	mock.ExpectQuery(`SELECT \* FROM "batches"`).
		WillReturnRows(sqlmock.NewRows(batchColumns).
			AddRow(1, 1, "MAR-1", 1772000000, 1772600000, 8, 7, 12000.0, 500.0, 2, 4, 0, 16, 10, true))

	router := setupRouter()
	adminBookingHandlers(router.Group("/api/admin/bookings"))

	w := httptest.NewRecorder()
	payload := fmt.Sprintf(`{"code":%q}`, code)
	req, _ := http.NewRequest("POST", "/api/admin/bookings/verify", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 404, w.Code)
}

func (s *TestSuite) TestGetBookingNotFound() {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	router := setupRouter()
	bookingHandlers(router.Group("/api/booking"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/booking/404", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 404, w.Code)
}
