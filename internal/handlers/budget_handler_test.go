package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finpro/internal/errors"
	"finpro/internal/models"
	"finpro/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn              func(userID uint, totalAmount float64, period string) (*models.Budget, error)
	updateBudgetFn              func(budgetID uint, totalAmount float64) (*models.Budget, error)
	getBudgetByUserFn           func(userID uint) (*models.Budget, error)
	getBudgetByUserAndPeriodFn  func(userID uint, period string) (*models.Budget, error)
	getCurrentRemainingBudgetFn func(userID uint) (float64, error)
	isUserAuthorizedFn          func(budgetID, userID uint) (bool, error)
}

func (m *mockBudgetService) CreateBudget(userID uint, totalAmount float64, period string) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, totalAmount, period)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(budgetID uint, totalAmount float64) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(budgetID, totalAmount)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetBudgetByUser(userID uint) (*models.Budget, error) {
	if m.getBudgetByUserFn != nil {
		return m.getBudgetByUserFn(userID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetBudgetByUserAndPeriod(userID uint, period string) (*models.Budget, error) {
	if m.getBudgetByUserAndPeriodFn != nil {
		return m.getBudgetByUserAndPeriodFn(userID, period)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetCurrentRemainingBudget(userID uint) (float64, error) {
	if m.getCurrentRemainingBudgetFn != nil {
		return m.getCurrentRemainingBudgetFn(userID)
	}
	return 0, nil
}

func (m *mockBudgetService) IsUserAuthorizedForBudget(budgetID, userID uint) (bool, error) {
	if m.isUserAuthorizedFn != nil {
		return m.isUserAuthorizedFn(budgetID, userID)
	}
	return true, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.GetBudget)
	auth.GET("/budgets/period/:period", handler.GetBudgetByPeriod)
	auth.GET("/budgets/remaining", handler.GetRemainingBudget)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(userID uint, totalAmount float64, period string) (*models.Budget, error) {
				return &models.Budget{
					Base:        models.Base{ID: 1},
					UserID:      userID,
					TotalAmount: totalAmount,
					Period:      period,
				}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"total_amount":1000,"period":"MONTHLY"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["total_amount"].(float64) != 1000 {
			t.Errorf("expected total_amount 1000, got %v", budget["total_amount"])
		}
	})

	t.Run("returns 400 on missing total amount", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"period":"MONTHLY"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on duplicate", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_ uint, _ float64, _ string) (*models.Budget, error) {
				return nil, apperrors.ErrDuplicateBudget
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"total_amount":1000,"period":"MONTHLY"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_BUDGET")
	})
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	t.Run("returns 403 when not owner", func(t *testing.T) {
		svc := &mockBudgetService{
			isUserAuthorizedFn: func(_, _ uint) (bool, error) { return false, nil },
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/2", `{"total_amount":2000}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FORBIDDEN")
	})

	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetFn: func(budgetID uint, totalAmount float64) (*models.Budget, error) {
				return &models.Budget{Base: models.Base{ID: budgetID}, TotalAmount: totalAmount}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/1", `{"total_amount":2000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["total_amount"].(float64) != 2000 {
			t.Errorf("expected total_amount 2000, got %v", budget["total_amount"])
		}
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetByUserFn: func(_ uint) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})
}

func TestBudgetHandler_GetRemainingBudget(t *testing.T) {
	t.Run("returns remaining amount", func(t *testing.T) {
		svc := &mockBudgetService{
			getCurrentRemainingBudgetFn: func(_ uint) (float64, error) { return 650, nil },
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/remaining", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["remaining_budget"].(float64) != 650 {
			t.Errorf("expected remaining_budget 650, got %v", result["remaining_budget"])
		}
	})
}
