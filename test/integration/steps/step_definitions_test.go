package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/financaspro/backend/internal/application/adapter"
	"github.com/financaspro/backend/internal/application/usecase/dashboard"
	"github.com/financaspro/backend/internal/application/usecase/goal"
	"github.com/financaspro/backend/internal/application/usecase/recurring"
	"github.com/financaspro/backend/internal/application/usecase/transaction"
	"github.com/financaspro/backend/internal/domain/entity"
	"github.com/financaspro/backend/internal/infra/server/router"
	"github.com/financaspro/backend/internal/integration/adapters"
	"github.com/financaspro/backend/internal/integration/cache"
	"github.com/financaspro/backend/internal/integration/entrypoint/controller"
	"github.com/financaspro/backend/internal/integration/entrypoint/middleware"
	"github.com/financaspro/backend/internal/integration/persistence"
	"github.com/financaspro/backend/internal/integration/persistence/model"
	"github.com/financaspro/backend/test/integration/mock"
)

const sessionSecret = "integration-test-secret"

var (
	serverOnce  sync.Once
	baseURL     string
	testDB      *mock.Db
	redisClient *redis.Client
	sessionSvc  adapter.SessionService
	txRepo      adapter.TransactionRepository
	goalRepo    adapter.GoalRepository
)

// testContext carries per-scenario state: the active session, the last HTTP
// exchange, and the ids captured from seeds and responses for placeholder
// substitution.
type testContext struct {
	authToken    string
	currentEmail string
	owners       map[string]uuid.UUID
	saved        map[string]string

	responseStatus int
	responseBody   []byte
	responseHeader http.Header
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// InitializeScenario registers the step definitions and scenario hooks.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		startServer()

		if err := testDB.ClearDB(); err != nil {
			return c, fmt.Errorf("failed to clear database: %w", err)
		}
		if err := mock.ClearRedis(redisClient); err != nil {
			return c, fmt.Errorf("failed to clear redis: %w", err)
		}

		tc.authToken = ""
		tc.currentEmail = ""
		tc.owners = make(map[string]uuid.UUID)
		tc.saved = make(map[string]string)
		tc.responseStatus = 0
		tc.responseBody = nil
		tc.responseHeader = nil
		return c, nil
	})

	ctx.Step(`^I am logged in as "([^"]*)"$`, tc.iAmLoggedInAs)
	ctx.Step(`^I am not logged in$`, tc.iAmNotLoggedIn)
	ctx.Step(`^I have an? (income|expense) transaction "([^"]*)" of ([\d.]+) in "([^"]*)" on "([^"]*)"$`, tc.iHaveATransaction)
	ctx.Step(`^I have a recurring expense "([^"]*)" of ([\d.]+) in "([^"]*)" on "([^"]*)"$`, tc.iHaveARecurringExpense)
	ctx.Step(`^I have a goal "([^"]*)" with target ([\d.]+) and current ([\d.]+)$`, tc.iHaveAGoal)
	ctx.Step(`^I have a goal "([^"]*)" with target ([\d.]+) and current ([\d.]+) due in (\d+) days$`, tc.iHaveAGoalDueIn)
	ctx.Step(`^I send a (GET|POST|PATCH|DELETE) request to "([^"]*)"$`, tc.iSendARequestTo)
	ctx.Step(`^I send a (GET|POST|PATCH|DELETE) request to "([^"]*)" with body:$`, tc.iSendARequestToWithBody)
	ctx.Step(`^the response status code should be (\d+)$`, tc.theResponseStatusCodeShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items$`, tc.theResponseFieldShouldHaveItems)
	ctx.Step(`^the response body should contain "([^"]*)"$`, tc.theResponseBodyShouldContain)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, tc.theResponseHeaderShouldContain)
	ctx.Step(`^the "([^"]*)" table should have (\d+) rows?$`, tc.theTableShouldHaveRows)
	ctx.Step(`^the "([^"]*)" table should contain a row with "([^"]*)" = "([^"]*)"$`, tc.theTableShouldContainRow)
}

// startServer wires the real application stack against the in-memory
// database and miniredis, and serves it on a free local port.
func startServer() {
	serverOnce.Do(func() {
		testDB = mock.NewDb(map[string]any{
			"transactions": &model.TransactionModel{},
			"goals":        &model.GoalModel{},
			"email_queue":  &model.EmailQueueModel{},
		})
		redisClient = mock.NewRedis()
		sessionSvc = adapters.NewSessionService(sessionSecret)

		txRepo = persistence.NewTransactionRepository(testDB.DbConn)
		goalRepo = persistence.NewGoalRepository(testDB.DbConn)
		queueRepo := persistence.NewEmailQueueRepository(testDB.DbConn)
		overviewCache := cache.NewOverviewCache(redisClient, 5*time.Minute)

		materializer := recurring.NewMaterializeUseCase(txRepo)
		overviewUseCase := dashboard.NewGetOverviewUseCase(
			txRepo, goalRepo, queueRepo, materializer, dashboard.DefaultWindowSize,
		)

		transactionController := controller.NewTransactionController(
			transaction.NewListTransactionsUseCase(txRepo),
			transaction.NewCreateTransactionUseCase(txRepo),
			transaction.NewDeleteTransactionUseCase(txRepo),
			transaction.NewExportCSVUseCase(txRepo),
			overviewCache,
		)
		goalController := controller.NewGoalController(
			goal.NewListGoalsUseCase(goalRepo),
			goal.NewCreateGoalUseCase(goalRepo),
			goal.NewUpdateGoalUseCase(goalRepo),
			goal.NewDepositGoalUseCase(goalRepo),
			goal.NewDeleteGoalUseCase(goalRepo),
			overviewCache,
		)
		dashboardController := controller.NewDashboardController(overviewUseCase, overviewCache)
		healthController := controller.NewHealthController(
			func() bool { return testDB != nil },
			func() bool { return redisClient.Ping(context.Background()).Err() == nil },
		)

		r := router.NewRouter(
			healthController,
			transactionController,
			goalController,
			dashboardController,
			middleware.NewRateLimiterWithConfig(10000, time.Minute),
			middleware.NewAuthMiddleware(sessionSvc),
		)
		engine := r.Setup("test")

		port := findAvailablePort()
		baseURL = fmt.Sprintf("http://localhost:%d", port)

		go func() {
			if err := http.ListenAndServe(fmt.Sprintf(":%d", port), engine); err != nil {
				panic(fmt.Sprintf("test server stopped: %v", err))
			}
		}()

		waitForHealth()
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(fmt.Sprintf("failed to find available port: %v", err))
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func waitForHealth() {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	panic("test server did not become healthy in time")
}

func (tc *testContext) ownerFor(email string) uuid.UUID {
	if id, ok := tc.owners[email]; ok {
		return id
	}
	id := uuid.New()
	tc.owners[email] = id
	return id
}

func (tc *testContext) iAmLoggedInAs(email string) error {
	ownerID := tc.ownerFor(email)
	token, err := sessionSvc.Issue(context.Background(), ownerID, email, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to issue session token: %w", err)
	}
	tc.authToken = token
	tc.currentEmail = email
	return nil
}

func (tc *testContext) iAmNotLoggedIn() error {
	tc.authToken = ""
	tc.currentEmail = ""
	return nil
}

func (tc *testContext) seedTransaction(txType, description, amount, category, date string, recurrent bool) error {
	if tc.currentEmail == "" {
		return fmt.Errorf("no active session to seed transactions for")
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	parsedDate, err := time.Parse("2006-01-02", tc.replacePlaceholders(date))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	tx := entity.NewTransaction(
		tc.ownerFor(tc.currentEmail),
		entity.TransactionType(txType),
		description,
		value,
		category,
		parsedDate,
		recurrent,
	)
	if err := txRepo.Create(context.Background(), tx); err != nil {
		return fmt.Errorf("failed to seed transaction: %w", err)
	}
	tc.saved["transaction:"+description] = tx.ID.String()
	return nil
}

func (tc *testContext) iHaveATransaction(txType, description, amount, category, date string) error {
	return tc.seedTransaction(txType, description, amount, category, date, false)
}

func (tc *testContext) iHaveARecurringExpense(description, amount, category, date string) error {
	return tc.seedTransaction("expense", description, amount, category, date, true)
}

func (tc *testContext) seedGoal(name, target, current string, deadline *time.Time) error {
	if tc.currentEmail == "" {
		return fmt.Errorf("no active session to seed goals for")
	}

	targetValue, err := decimal.NewFromString(target)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}
	currentValue, err := decimal.NewFromString(current)
	if err != nil {
		return fmt.Errorf("invalid current %q: %w", current, err)
	}

	ownerID := tc.ownerFor(tc.currentEmail)
	existing, err := goalRepo.CountByOwner(context.Background(), ownerID)
	if err != nil {
		return fmt.Errorf("failed to count goals: %w", err)
	}

	g := entity.NewGoal(ownerID, name, targetValue, currentValue, deadline, existing)
	if err := goalRepo.Create(context.Background(), g); err != nil {
		return fmt.Errorf("failed to seed goal: %w", err)
	}
	tc.saved["goal:"+name] = g.ID.String()
	return nil
}

func (tc *testContext) iHaveAGoal(name, target, current string) error {
	return tc.seedGoal(name, target, current, nil)
}

func (tc *testContext) iHaveAGoalDueIn(name, target, current string, days int) error {
	deadline := time.Now().UTC().AddDate(0, 0, days)
	return tc.seedGoal(name, target, current, &deadline)
}

// replacePlaceholders substitutes seeded ids, captured response ids, and
// relative month keys so feature files stay deterministic across runs.
func (tc *testContext) replacePlaceholders(in string) string {
	out := in
	for key, value := range tc.saved {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out = strings.ReplaceAll(out, "{{current_month}}", monthStart.Format("2006-01"))
	out = strings.ReplaceAll(out, "{{previous_month}}", monthStart.AddDate(0, -1, 0).Format("2006-01"))
	out = strings.ReplaceAll(out, "{{next_month}}", monthStart.AddDate(0, 1, 0).Format("2006-01"))
	return out
}

func (tc *testContext) doRequest(method, path string, body []byte) error {
	url := baseURL + tc.replacePlaceholders(path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.authToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	tc.responseStatus = resp.StatusCode
	tc.responseBody = payload
	tc.responseHeader = resp.Header
	tc.captureResponseID()
	return nil
}

// captureResponseID stores the "id" of a created resource so later steps can
// reference it as {{last_id}}.
func (tc *testContext) captureResponseID() {
	var parsed map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &parsed); err != nil {
		return
	}
	if id, ok := parsed["id"].(string); ok {
		tc.saved["last_id"] = id
	}
}

func (tc *testContext) iSendARequestTo(method, path string) error {
	return tc.doRequest(method, path, nil)
}

func (tc *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return tc.doRequest(method, path, []byte(tc.replacePlaceholders(body.Content)))
}

func (tc *testContext) theResponseStatusCodeShouldBe(expected int) error {
	if tc.responseStatus != expected {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expected, tc.responseStatus, tc.responseBody)
	}
	return nil
}

// getFieldValue walks a dot-separated path through the parsed JSON response.
// Numeric path segments index into arrays.
func (tc *testContext) getFieldValue(path string) (interface{}, error) {
	var current interface{}
	if err := json.Unmarshal(tc.responseBody, &current); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w (body: %s)", err, tc.responseBody)
	}

	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response (path %q)", segment, path)
			}
			current = value
		case []interface{}:
			index, err := strconv.Atoi(segment)
			if err != nil {
				return nil, fmt.Errorf("expected array index at %q in path %q", segment, path)
			}
			if index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index %d out of range (len %d) in path %q", index, len(node), path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot descend into %T at %q in path %q", current, segment, path)
		}
	}
	return current, nil
}

func (tc *testContext) theResponseFieldShouldBe(path, expected string) error {
	value, err := tc.getFieldValue(path)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != tc.replacePlaceholders(expected) {
		return fmt.Errorf("field %q = %q, expected %q (body: %s)", path, actual, expected, tc.responseBody)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldHaveItems(path string, count int) error {
	value, err := tc.getFieldValue(path)
	if err != nil {
		return err
	}

	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field %q is %T, not an array", path, value)
	}
	if len(items) != count {
		return fmt.Errorf("field %q has %d items, expected %d (body: %s)", path, len(items), count, tc.responseBody)
	}
	return nil
}

func (tc *testContext) theResponseBodyShouldContain(substr string) error {
	if !strings.Contains(string(tc.responseBody), tc.replacePlaceholders(substr)) {
		return fmt.Errorf("response body does not contain %q (body: %s)", substr, tc.responseBody)
	}
	return nil
}

func (tc *testContext) theResponseHeaderShouldContain(header, value string) error {
	actual := tc.responseHeader.Get(header)
	if !strings.Contains(actual, value) {
		return fmt.Errorf("header %q = %q, expected it to contain %q", header, actual, value)
	}
	return nil
}

func (tc *testContext) theTableShouldHaveRows(table string, count int) error {
	actual, err := testDB.Count(table)
	if err != nil {
		return err
	}
	if actual != int64(count) {
		return fmt.Errorf("table %q has %d rows, expected %d", table, actual, count)
	}
	return nil
}

func (tc *testContext) theTableShouldContainRow(table, column, value string) error {
	tableModel, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	var count int64
	err := testDB.DbConn.Model(tableModel).
		Where(map[string]interface{}{column: tc.replacePlaceholders(value)}).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to query table %q: %w", table, err)
	}
	if count == 0 {
		return fmt.Errorf("table %q has no row with %s = %q", table, column, value)
	}
	return nil
}
