package integration

import (
	"net/http"
	"testing"
)

func TestGoalFlow_CurrentAmountDerivation(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Goal User", "goal@test.com", "password123")

	// Budget of 1000, then 2000 income and a 400 expense
	rec := app.request("POST", "/api/v1/budgets",
		`{"total_amount":1000,"period":"MONTHLY"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating budget, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, body := range []string{
		`{"category":"Salary","type":"INCOME","amount":2000}`,
		`{"category":"Rent","type":"EXPENSE","amount":400}`,
	} {
		rec = app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec = app.request("POST", "/api/v1/goals",
		`{"name":"Emergency Fund","target_amount":10000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating goal, got %d: %s", rec.Code, rec.Body.String())
	}

	// Reading the goal derives current = income (2000) + remaining budget (600)
	rec = app.request("GET", "/api/v1/goals", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	goal := parseJSON(t, rec)["goal"].(map[string]interface{})
	if current := goal["current_amount"].(float64); current != 2600 {
		t.Errorf("expected current amount 2600, got %.2f", current)
	}
}

func TestGoalFlow_Progress(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Progress User", "progress@test.com", "password123")

	rec := app.request("POST", "/api/v1/budgets",
		`{"total_amount":1000,"period":"MONTHLY"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	rec = app.request("POST", "/api/v1/transactions",
		`{"category":"Salary","type":"INCOME","amount":4000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = app.request("POST", "/api/v1/goals",
		`{"name":"House Deposit","target_amount":10000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// current = 4000 income + 1000 untouched budget = 5000 of 10000
	rec = app.request("GET", "/api/v1/goals/progress", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	progress := parseJSON(t, rec)["progress"].(map[string]interface{})
	if pct := progress["progress_percentage"].(float64); pct != 50 {
		t.Errorf("expected 50%% progress, got %.2f", pct)
	}
	if status := progress["status"].(string); status != "BEHIND" {
		t.Errorf("expected BEHIND, got %s", status)
	}
	if diff := progress["difference"].(float64); diff != -5000 {
		t.Errorf("expected difference -5000, got %.2f", diff)
	}
}

func TestGoalFlow_RequiresBudget(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Budgetless User", "nobudget@test.com", "password123")

	rec := app.request("POST", "/api/v1/goals",
		`{"name":"Vacation","target_amount":3000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating goal, got %d: %s", rec.Code, rec.Body.String())
	}

	// Derivation needs a budget for the remaining component
	rec = app.request("GET", "/api/v1/goals", "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a budget, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "BUDGET_NOT_FOUND" {
		t.Errorf("expected BUDGET_NOT_FOUND, got %s", code)
	}
}

func TestGoalFlow_OneGoalPerUser(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Single Goal", "singlegoal@test.com", "password123")

	rec := app.request("POST", "/api/v1/goals",
		`{"name":"First","target_amount":1000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = app.request("POST", "/api/v1/goals",
		`{"name":"Second","target_amount":2000}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for second goal, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "DUPLICATE_GOAL" {
		t.Errorf("expected DUPLICATE_GOAL, got %s", code)
	}
}
