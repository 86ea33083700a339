package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"finpro/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique name.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithName(t, db, fmt.Sprintf("Test User %d", n))
}

// CreateTestUserWithName creates a user with the given full name.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, fullName string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		FullName: fullName,
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		Provider: models.ProviderSelf,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given type and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:   userID,
		Category: fmt.Sprintf("Test Category %d", nextID()),
		Type:     txType,
		Amount:   amount,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget with the given total amount. The spent
// amount starts at zero.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, totalAmount float64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:      userID,
		TotalAmount: totalAmount,
		Period:      "MONTHLY",
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal creates a savings goal with the given target amount.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, targetAmount float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: targetAmount,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestInvestment creates an investment holding for the given symbol.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID uint, symbol string, quantity, purchasePrice float64) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		UserID:        userID,
		Type:          "STOCK",
		Symbol:        symbol,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		Amount:        quantity * purchasePrice,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}
