package service

import (
	"crypto/rand"
	"encoding/json"
	"time"

	"mess-booking/internal/store"
	"mess-booking/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func restore() {
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	randInt = rand.Int
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal

	createUser = store.CreateUser
	getUserByID = store.GetUserByID
	getUserByEmail = store.GetUserByEmail
	listUsers = store.ListUsers
	updateUserPassword = store.UpdateUserPassword

	upsertBooking = store.UpsertBooking
	getBookingForDate = store.GetBookingForDate
	listBookingsForUser = store.ListBookingsForUser
	listBookingsForDate = store.ListBookingsForDate
	countMealsForDate = store.CountMealsForDate

	billExists = store.BillExists
	insertBill = store.InsertBill
	listBookingsBetween = store.ListBookingsForUserBetween
	getBill = store.GetBill
	listBillsForUser = store.ListBillsForUser
	listAllBills = store.ListAllBills
	markBillPaid = store.MarkBillPaid
	newPool = worker.NewPool

	upsertMenuEntry = store.UpsertMenuEntry
	getMenuEntry = store.GetMenuEntry
	listMenuEntries = store.ListMenuEntries
	deleteMenuEntry = store.DeleteMenuEntry
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
