package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"wealthtracker/internal/auth"
	database "wealthtracker/internal/db"
	"wealthtracker/internal/finance/application"
	financeInfra "wealthtracker/internal/finance/infrastructure"
	financeHTTP "wealthtracker/internal/finance/interfaces"
	"wealthtracker/internal/holdings"
	"wealthtracker/internal/holdings/account"
	"wealthtracker/internal/holdings/snapshot"
	investments "wealthtracker/internal/investment"
	assets "wealthtracker/internal/investment/asset"
	"wealthtracker/internal/investment/history"
	portfolios "wealthtracker/internal/investment/portfolio"
	transactions "wealthtracker/internal/investment/transaction"
	"wealthtracker/internal/networth"
	"wealthtracker/internal/reports"
	"wealthtracker/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	authService        auth.Service
	authHandler        *auth.Handler
	userHandler        *user.Handler
	categoryHandler    *financeHTTP.CategoryHandler
	transactionHandler *financeHTTP.TransactionHandler
	summaryHandler     *financeHTTP.SummaryHandler
	holdingsHandler    *holdings.Handler
	investmentsHandler *investments.Handler
	netWorthHandler    *networth.Handler
	reportHandler      *reports.Handler
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	protect := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.Register))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.Login))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", protect(http.HandlerFunc(s.userHandler.GetProfile)))
	protectedRoutes.Handle("POST /api/protected/change-password", protect(http.HandlerFunc(s.userHandler.ChangePassword)))

	// FINANCES API
	protectedRoutes.Handle("GET /api/protected/finances/categories", protect(http.HandlerFunc(s.categoryHandler.GetCategories)))
	protectedRoutes.Handle("POST /api/protected/finances/categories", protect(http.HandlerFunc(s.categoryHandler.CreateCategory)))
	protectedRoutes.Handle("PUT /api/protected/finances/categories/{categoryID}", protect(http.HandlerFunc(s.categoryHandler.UpdateCategory)))
	protectedRoutes.Handle("DELETE /api/protected/finances/categories/{categoryID}", protect(http.HandlerFunc(s.categoryHandler.DeleteCategory)))

	protectedRoutes.Handle("GET /api/protected/finances/subcategories", protect(http.HandlerFunc(s.categoryHandler.GetSubCategories)))
	protectedRoutes.Handle("POST /api/protected/finances/subcategories", protect(http.HandlerFunc(s.categoryHandler.CreateSubCategory)))
	protectedRoutes.Handle("DELETE /api/protected/finances/subcategories/{subCategoryID}", protect(http.HandlerFunc(s.categoryHandler.DeleteSubCategory)))

	protectedRoutes.Handle("GET /api/protected/finances/locations", protect(http.HandlerFunc(s.categoryHandler.GetLocations)))
	protectedRoutes.Handle("POST /api/protected/finances/locations", protect(http.HandlerFunc(s.categoryHandler.CreateLocation)))
	protectedRoutes.Handle("DELETE /api/protected/finances/locations/{locationID}", protect(http.HandlerFunc(s.categoryHandler.DeleteLocation)))

	protectedRoutes.Handle("GET /api/protected/finances/transactions", protect(http.HandlerFunc(s.transactionHandler.GetPeriodTransactions)))
	protectedRoutes.Handle("POST /api/protected/finances/transactions", protect(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("PUT /api/protected/finances/transactions/{transactionID}", protect(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/finances/transactions/{transactionID}", protect(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	protectedRoutes.Handle("GET /api/protected/finances/summary", protect(http.HandlerFunc(s.summaryHandler.GetMonthlySummary)))
	protectedRoutes.Handle("GET /api/protected/finances/cashflow", protect(http.HandlerFunc(s.summaryHandler.GetAnnualCashflow)))
	protectedRoutes.Handle("GET /api/protected/finances/years", protect(http.HandlerFunc(s.summaryHandler.GetAvailableYears)))

	// HOLDINGS API
	protectedRoutes.Handle("GET /api/protected/holdings/accounts", protect(http.HandlerFunc(s.holdingsHandler.GetAccounts)))
	protectedRoutes.Handle("POST /api/protected/holdings/accounts", protect(http.HandlerFunc(s.holdingsHandler.CreateAccount)))
	protectedRoutes.Handle("PUT /api/protected/holdings/accounts/{accountID}", protect(http.HandlerFunc(s.holdingsHandler.UpdateAccount)))
	protectedRoutes.Handle("DELETE /api/protected/holdings/accounts/{accountID}", protect(http.HandlerFunc(s.holdingsHandler.DeactivateAccount)))
	protectedRoutes.Handle("GET /api/protected/holdings/accounts/{accountID}/snapshots", protect(http.HandlerFunc(s.holdingsHandler.GetAccountHistory)))

	protectedRoutes.Handle("POST /api/protected/holdings/snapshots", protect(http.HandlerFunc(s.holdingsHandler.CreateSnapshot)))
	protectedRoutes.Handle("DELETE /api/protected/holdings/snapshots/{snapshotID}", protect(http.HandlerFunc(s.holdingsHandler.DeleteSnapshot)))

	protectedRoutes.Handle("GET /api/protected/holdings/cash", protect(http.HandlerFunc(s.holdingsHandler.GetCashValue)))
	protectedRoutes.Handle("GET /api/protected/holdings/evolution", protect(http.HandlerFunc(s.holdingsHandler.GetBalanceEvolution)))

	// INVESTMENTS API
	protectedRoutes.Handle("GET /api/protected/investments/assets", protect(http.HandlerFunc(s.investmentsHandler.GetAssets)))
	protectedRoutes.Handle("POST /api/protected/investments/assets", protect(http.HandlerFunc(s.investmentsHandler.CreateAsset)))
	protectedRoutes.Handle("PUT /api/protected/investments/assets/{assetID}", protect(http.HandlerFunc(s.investmentsHandler.UpdateAsset)))
	protectedRoutes.Handle("DELETE /api/protected/investments/assets/{assetID}", protect(http.HandlerFunc(s.investmentsHandler.DeleteAsset)))
	protectedRoutes.Handle("GET /api/protected/investments/assets/{assetID}/transactions", protect(http.HandlerFunc(s.investmentsHandler.GetAssetTransactions)))
	protectedRoutes.Handle("GET /api/protected/investments/assets/{assetID}/valuations", protect(http.HandlerFunc(s.investmentsHandler.GetAssetValuations)))

	protectedRoutes.Handle("POST /api/protected/investments/transactions", protect(http.HandlerFunc(s.investmentsHandler.CreateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/investments/transactions/{transactionID}", protect(http.HandlerFunc(s.investmentsHandler.DeleteTransaction)))

	protectedRoutes.Handle("POST /api/protected/investments/valuations", protect(http.HandlerFunc(s.investmentsHandler.CreateValuation)))
	protectedRoutes.Handle("DELETE /api/protected/investments/valuations/{valuationID}", protect(http.HandlerFunc(s.investmentsHandler.DeleteValuation)))

	protectedRoutes.Handle("GET /api/protected/investments/portfolio", protect(http.HandlerFunc(s.investmentsHandler.GetPortfolioOverview)))
	protectedRoutes.Handle("GET /api/protected/investments/portfolio/evolution", protect(http.HandlerFunc(s.investmentsHandler.GetAnnualEvolution)))
	protectedRoutes.Handle("GET /api/protected/investments/portfolio/performance", protect(http.HandlerFunc(s.investmentsHandler.GetPerformanceHistory)))
	protectedRoutes.Handle("GET /api/protected/investments/portfolio/contributions", protect(http.HandlerFunc(s.investmentsHandler.GetMonthlyContributions)))

	// NET WORTH API
	protectedRoutes.Handle("GET /api/protected/networth", protect(http.HandlerFunc(s.netWorthHandler.GetNetWorth)))
	protectedRoutes.Handle("GET /api/protected/networth/evolution", protect(http.HandlerFunc(s.netWorthHandler.GetNetWorthEvolution)))

	// REPORTS API
	protectedRoutes.Handle("GET /api/protected/reports/annual", protect(http.HandlerFunc(s.reportHandler.GetAnnualReport)))
	protectedRoutes.Handle("GET /api/protected/reports/financial", protect(http.HandlerFunc(s.reportHandler.GetFinancialReport)))
	protectedRoutes.Handle("GET /api/protected/reports/investments", protect(http.HandlerFunc(s.reportHandler.GetInvestmentReport)))
	protectedRoutes.Handle("GET /api/protected/reports/holdings", protect(http.HandlerFunc(s.reportHandler.GetHoldingsReport)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func incompleteIncomeThreshold() decimal.Decimal {
	raw := os.Getenv("INCOMPLETE_INCOME_THRESHOLD")
	if raw == "" {
		return application.DefaultIncompleteIncomeThreshold
	}
	threshold, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Invalid INCOMPLETE_INCOME_THRESHOLD %q, using default", raw)
		return application.DefaultIncompleteIncomeThreshold
	}
	return threshold
}

func excludedAssetName() string {
	if name := os.Getenv("EXCLUDED_ASSET_NAME"); name != "" {
		return name
	}
	return portfolios.DefaultExcludedAssetName
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewUserHandler(userService, respondJSON, respondError)

	jwtManager := auth.NewJWTManager()
	authService := auth.NewAuthService(jwtManager, userService)
	authHandler := auth.NewAuthHandler(authService, respondJSON, respondError)

	categoryRepo := financeInfra.NewCategoryRepository(dbService.DB)
	subCategoryRepo := financeInfra.NewSubCategoryRepository(dbService.DB)
	locationRepo := financeInfra.NewLocationRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo, subCategoryRepo, locationRepo)
	categoryHandler := financeHTTP.NewCategoryHandler(categoryService, respondJSON, respondError)

	financeTransactionRepo := financeInfra.NewTransactionRepository(dbService.DB)
	transactionService := application.NewTransactionService(financeTransactionRepo, categoryService)
	transactionHandler := financeHTTP.NewTransactionHandler(transactionService, respondJSON, respondError)

	summaryService := application.NewSummaryService(financeTransactionRepo, incompleteIncomeThreshold())
	summaryHandler := financeHTTP.NewSummaryHandler(summaryService, respondJSON, respondError)

	accountRepo := account.NewAccountRepository(dbService.DB)
	accountService := account.NewAccountService(accountRepo)
	snapshotRepo := snapshot.NewSnapshotRepository(dbService.DB)
	snapshotService := snapshot.NewSnapshotService(snapshotRepo, accountService)
	holdingsHandler := holdings.NewHoldingsHandler(accountService, snapshotService, respondJSON, respondError)

	assetRepo := assets.NewAssetRepository(dbService.DB)
	assetService := assets.NewAssetService(assetRepo)
	investmentTransactionRepo := transactions.NewTransactionRepository(dbService.DB)
	investmentTransactionService := transactions.NewTransactionService(investmentTransactionRepo, assetService)
	historyRepo := history.NewHistoryRepository(dbService.DB)
	historyService := history.NewHistoryService(historyRepo, assetService)
	portfolioService := portfolios.NewPortfolioService(assetService, investmentTransactionService, historyService, excludedAssetName(), nil)
	investmentsHandler := investments.NewInvestmentHandler(assetService, investmentTransactionService, historyService, portfolioService, respondJSON, respondError)

	netWorthService := networth.NewNetWorthService(snapshotService, portfolioService, nil)
	netWorthHandler := networth.NewNetWorthHandler(netWorthService, respondJSON, respondError)

	reportService := reports.NewReportService(summaryService, portfolioService, snapshotService)
	reportHandler := reports.NewReportHandler(reportService, respondJSON, respondError)

	server := &Server{
		authService:        authService,
		authHandler:        authHandler,
		userHandler:        userHandler,
		categoryHandler:    categoryHandler,
		transactionHandler: transactionHandler,
		summaryHandler:     summaryHandler,
		holdingsHandler:    holdingsHandler,
		investmentsHandler: investmentsHandler,
		netWorthHandler:    netWorthHandler,
		reportHandler:      reportHandler,
	}
	server.RegisterRoutes()

	handler := loggingMiddleware(http.HandlerFunc(server.router.ServeHTTP))
	log.Println("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
