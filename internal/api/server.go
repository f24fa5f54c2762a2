package api

import (
	"context"
	"log"

	"github.com/campusgate/admission_service/config"
	"github.com/campusgate/admission_service/infra/queue"
	"github.com/campusgate/admission_service/internal/api/rest/handlers"
	"github.com/campusgate/admission_service/internal/clients/gateway"
	"github.com/campusgate/admission_service/internal/domain"
	"github.com/campusgate/admission_service/internal/dto"
	"github.com/campusgate/admission_service/internal/helper"
	"github.com/campusgate/admission_service/internal/interfaces"
	"github.com/campusgate/admission_service/internal/repository"
	"github.com/campusgate/admission_service/internal/services"
	"github.com/campusgate/admission_service/pkg/sessionstore"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"golang.org/x/crypto/bcrypt"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.BaseURL,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- Session persistence ----------
	var store interfaces.SessionStore
	switch {
	case cfg.RedisAddr != "":
		rs := sessionstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rs.Ping(context.Background()); err != nil {
			log.Fatalf("redis connection error: %v", err)
		}
		log.Println("using redis session store at", cfg.RedisAddr)
		store = rs
	case cfg.StateFile != "":
		log.Println("using file session store at", cfg.StateFile)
		store = sessionstore.NewFileStore(cfg.StateFile)
	default:
		log.Println("no persistence configured, state is in-memory only")
		store = sessionstore.NewMemoryStore()
	}

	// ---------- Repositories ----------
	studentRepo, err := repository.NewStudentRepository(store)
	if err != nil {
		log.Fatalf("student repository error: %v", err)
	}
	userRepo := repository.NewUserRepository()

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	gatewayClient := gateway.New(cfg.GatewayFailureRate)
	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Services ----------
	lifecycleSvc := services.NewLifecycleService(studentRepo, kafkaProducer, gatewayClient)
	accessSvc := services.NewAccessService(studentRepo)

	seedDemoData(lifecycleSvc, userRepo, studentRepo)

	// ---------- Handlers ----------
	authHandler := handlers.NewAuthHandler(userRepo, authHelper)
	authHandler.SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Everything past this point requires a token.
	admissionHandler := handlers.NewAdmissionHandler(lifecycleSvc, accessSvc, authHelper)
	admissionHandler.SetupRoutes(app)

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

// seedDemoData creates the demo accounts (every boot, accounts live in
// memory) and, when the loaded collection is empty, two example students.
func seedDemoData(svc services.LifecycleService, users repository.UserRepository, studentRepo repository.StudentRepository) {
	hash := func(plain string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("seed password hash error: %v", err)
		}
		return string(h)
	}
	password := hash("password123")

	seedUser := func(u domain.User) *domain.User {
		created, err := users.CreateUser(&u)
		if err != nil {
			log.Printf("seed user %s error: %v", u.Email, err)
			return nil
		}
		return created
	}

	seedUser(domain.User{Email: "admin@campusgate.dev", PasswordHash: password, DisplayName: "Portal Admin", Role: domain.RoleAdmin})
	seedUser(domain.User{Email: "staff.br01@campusgate.dev", PasswordHash: password, DisplayName: "Branch One Staff", Role: domain.RoleStaff, BranchID: "BR01"})
	seedUser(domain.User{Email: "staff.br02@campusgate.dev", PasswordHash: password, DisplayName: "Branch Two Staff", Role: domain.RoleStaff, BranchID: "BR02"})
	seedUser(domain.User{Email: "auditor@campusgate.dev", PasswordHash: password, DisplayName: "Auditor", Role: domain.RoleAuditor})
	agent := seedUser(domain.User{Email: "agent@campusgate.dev", PasswordHash: password, DisplayName: "Referral Agent", Role: domain.RoleAgent})

	if studentRepo.CountStudents() == 0 {
		var referredBy uint
		if agent != nil {
			referredBy = agent.ID
		}
		students := []dto.CreateStudentRequest{
			{
				Name: "Ananya Sharma", Email: "ananya@example.com", Phone: "9800000001",
				Category: "general", DomicileState: "Maharashtra", DomicileCity: "Pune",
				BranchID: "BR01", ReferredBy: referredBy,
				AcademicHistory: []dto.ExamScoreInput{
					{Exam: "Class XII", Year: 2025, Score: 465, MaxScore: 500, BoardOrUni: "CBSE"},
					{Exam: "JEE Main", Year: 2026, Score: 97.2, MaxScore: 100},
				},
			},
			{
				Name: "Rohit Verma", Email: "rohit@example.com", Phone: "9800000002",
				Category: "obc", DomicileState: "Karnataka", DomicileCity: "Bengaluru",
				BranchID: "BR02",
				AcademicHistory: []dto.ExamScoreInput{
					{Exam: "Class XII", Year: 2025, Score: 432, MaxScore: 500, BoardOrUni: "State Board"},
				},
			},
		}
		for _, s := range students {
			if _, err := svc.CreateStudent(s); err != nil {
				log.Printf("seed student %s error: %v", s.Email, err)
			}
		}
		log.Println("seeded demo students")
	}

	// The first seeded student is ST001; link the demo student and parent
	// logins to it.
	seedUser(domain.User{Email: "student@campusgate.dev", PasswordHash: password, DisplayName: "Ananya Sharma", Role: domain.RoleStudent, StudentID: "ST001"})
	seedUser(domain.User{Email: "parent@campusgate.dev", PasswordHash: password, DisplayName: "Ananya's Parent", Role: domain.RoleParent, StudentID: "ST001"})
}
