package app

import (
	"fmt"

	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/adapters/config"
	"github.com/adamatova/community-api/internal/adapters/primary/httpapi"
	"github.com/adamatova/community-api/internal/adapters/secondary/auth"
	"github.com/adamatova/community-api/internal/adapters/secondary/memcache"
	pgadapter "github.com/adamatova/community-api/internal/adapters/secondary/postgres"
	"github.com/adamatova/community-api/internal/adapters/secondary/push"
	"github.com/adamatova/community-api/internal/adapters/secondary/redis"
	"github.com/adamatova/community-api/internal/adapters/secondary/smtp"
	"github.com/adamatova/community-api/internal/adapters/secondary/storage"
	"github.com/adamatova/community-api/internal/domain/schedule"
	"github.com/adamatova/community-api/internal/domain/service"
	"github.com/adamatova/community-api/internal/ports/primary"
	"github.com/adamatova/community-api/internal/ports/secondary"
	"github.com/adamatova/community-api/pkg/changefeed"
	"github.com/adamatova/community-api/pkg/logger"
)

// serviceProvider wires adapters and services lazily; every dependency is
// built on first use and reused after.
type serviceProvider struct {
	cfg *config.Config

	db    *gorm.DB
	cache secondary.Cache
	feed  *changefeed.Feed
	clock schedule.Clock

	groupRepo         secondary.GroupRepository
	workshopRepo      secondary.WorkshopRepository
	groupRegRepo      secondary.GroupRegistrationRepository
	workshopRegRepo   secondary.WorkshopRegistrationRepository
	participantRepo   secondary.ParticipantRepository
	administratorRepo secondary.AdministratorRepository
	announcementRepo  secondary.AnnouncementRepository
	notificationRepo  secondary.NotificationRepository
	deviceRepo        secondary.DeviceRepository
	fileStorage       secondary.FileStorage
	pushSender        secondary.PushSender
	emailSender       secondary.EmailSender
	authProvider      secondary.AuthProvider

	activityService     primary.ActivityService
	registrationService primary.RegistrationService
	dashboardService    primary.DashboardService
	sweeperService      primary.SweeperService
	notifyService       primary.NotifyService
	announcementService primary.AnnouncementService
	participantService  primary.ParticipantService
	exportService       primary.ExportService

	httpHandler *httpapi.Handler
}

func newServiceProvider() *serviceProvider {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}
	return &serviceProvider{cfg: cfg}
}

func (s *serviceProvider) Cfg() *config.Config {
	return s.cfg
}

func (s *serviceProvider) DB() *gorm.DB {
	if s.db == nil {
		db, err := gorm.Open(postgres.Open(s.cfg.PG.DSN()), &gorm.Config{
			TranslateError: true,
		})
		if err != nil {
			panic(fmt.Errorf("failed to connect to postgres: %w", err))
		}
		if err := db.AutoMigrate(pgadapter.Migrations...); err != nil {
			panic(fmt.Errorf("failed to run migrations: %w", err))
		}
		s.db = db
	}
	return s.db
}

// Cache is redis when enabled, an in-process map otherwise.
func (s *serviceProvider) Cache() secondary.Cache {
	if s.cache == nil {
		if s.cfg.RedisConf.Enabled() {
			client, err := redis.New(redis.Options{
				Host:     s.cfg.RedisConf.Host(),
				Port:     s.cfg.RedisConf.Port(),
				Password: s.cfg.RedisConf.Password(),
				DB:       s.cfg.RedisConf.DB(),
			})
			if err != nil {
				panic(fmt.Errorf("failed to connect to redis: %w", err))
			}
			s.cache = client
		} else {
			s.cache = memcache.New()
		}
	}
	return s.cache
}

func (s *serviceProvider) Feed() *changefeed.Feed {
	if s.feed == nil {
		s.feed = changefeed.New()
	}
	return s.feed
}

func (s *serviceProvider) Clock() schedule.Clock {
	if s.clock == nil {
		s.clock = schedule.SystemClock{}
	}
	return s.clock
}

// Repositories

func (s *serviceProvider) GroupRepo() secondary.GroupRepository {
	if s.groupRepo == nil {
		s.groupRepo = pgadapter.NewGroupRepository(s.DB())
	}
	return s.groupRepo
}

func (s *serviceProvider) WorkshopRepo() secondary.WorkshopRepository {
	if s.workshopRepo == nil {
		s.workshopRepo = pgadapter.NewWorkshopRepository(s.DB())
	}
	return s.workshopRepo
}

func (s *serviceProvider) GroupRegistrationRepo() secondary.GroupRegistrationRepository {
	if s.groupRegRepo == nil {
		s.groupRegRepo = pgadapter.NewGroupRegistrationRepository(s.DB())
	}
	return s.groupRegRepo
}

func (s *serviceProvider) WorkshopRegistrationRepo() secondary.WorkshopRegistrationRepository {
	if s.workshopRegRepo == nil {
		s.workshopRegRepo = pgadapter.NewWorkshopRegistrationRepository(s.DB())
	}
	return s.workshopRegRepo
}

func (s *serviceProvider) ParticipantRepo() secondary.ParticipantRepository {
	if s.participantRepo == nil {
		s.participantRepo = pgadapter.NewParticipantRepository(s.DB())
	}
	return s.participantRepo
}

func (s *serviceProvider) AdministratorRepo() secondary.AdministratorRepository {
	if s.administratorRepo == nil {
		s.administratorRepo = pgadapter.NewAdministratorRepository(s.DB())
	}
	return s.administratorRepo
}

func (s *serviceProvider) AnnouncementRepo() secondary.AnnouncementRepository {
	if s.announcementRepo == nil {
		s.announcementRepo = pgadapter.NewAnnouncementRepository(s.DB())
	}
	return s.announcementRepo
}

func (s *serviceProvider) NotificationRepo() secondary.NotificationRepository {
	if s.notificationRepo == nil {
		s.notificationRepo = pgadapter.NewNotificationRepository(s.DB())
	}
	return s.notificationRepo
}

func (s *serviceProvider) DeviceRepo() secondary.DeviceRepository {
	if s.deviceRepo == nil {
		s.deviceRepo = pgadapter.NewDeviceRepository(s.DB())
	}
	return s.deviceRepo
}

// Collaborators

func (s *serviceProvider) FileStorage() secondary.FileStorage {
	if s.fileStorage == nil {
		disk, err := storage.NewDisk(s.cfg.App.StorageDir(), s.cfg.App.StorageBaseURL())
		if err != nil {
			panic(fmt.Errorf("failed to init file storage: %w", err))
		}
		s.fileStorage = disk
	}
	return s.fileStorage
}

func (s *serviceProvider) PushSender() secondary.PushSender {
	if s.pushSender == nil {
		s.pushSender = push.NewWebhookSender(s.cfg.App.PushTimeout())
	}
	return s.pushSender
}

func (s *serviceProvider) EmailSender() secondary.EmailSender {
	if s.emailSender == nil {
		dialer := gomail.NewDialer(
			s.cfg.SMTP.Host(),
			s.cfg.SMTP.Port(),
			s.cfg.SMTP.Login(),
			s.cfg.SMTP.Password(),
		)
		s.emailSender = smtp.NewClient(dialer, s.cfg.SMTP.From())
	}
	return s.emailSender
}

func (s *serviceProvider) AuthProvider() secondary.AuthProvider {
	if s.authProvider == nil {
		s.authProvider = auth.NewJWTProvider(s.cfg.Auth.Secret())
	}
	return s.authProvider
}

// Services

func (s *serviceProvider) ActivityService() primary.ActivityService {
	if s.activityService == nil {
		activityLogger, err := logger.Named("activity")
		if err != nil {
			panic(fmt.Errorf("failed to create activity logger: %w", err))
		}

		s.activityService = service.NewActivityService(
			activityLogger,
			s.GroupRepo(),
			s.WorkshopRepo(),
			s.GroupRegistrationRepo(),
			s.WorkshopRegistrationRepo(),
			s.ParticipantRepo(),
			s.FileStorage(),
			s.Feed(),
			s.Clock(),
			s.cfg.App.CommunityStatuses(),
		)
	}
	return s.activityService
}

func (s *serviceProvider) RegistrationService() primary.RegistrationService {
	if s.registrationService == nil {
		registrationLogger, err := logger.Named("registration")
		if err != nil {
			panic(fmt.Errorf("failed to create registration logger: %w", err))
		}

		s.registrationService = service.NewRegistrationService(
			registrationLogger,
			s.GroupRepo(),
			s.WorkshopRepo(),
			s.GroupRegistrationRepo(),
			s.WorkshopRegistrationRepo(),
			s.ParticipantRepo(),
			s.NotifyService(),
			s.Feed(),
			s.Clock(),
			s.cfg.App.CommunityStatuses(),
			s.cfg.App.StrictRegistrationCheck(),
		)
	}
	return s.registrationService
}

func (s *serviceProvider) DashboardService() primary.DashboardService {
	if s.dashboardService == nil {
		dashboardLogger, err := logger.Named("dashboard")
		if err != nil {
			panic(fmt.Errorf("failed to create dashboard logger: %w", err))
		}

		s.dashboardService = service.NewDashboardService(
			dashboardLogger,
			s.GroupRepo(),
			s.WorkshopRepo(),
			s.Cache(),
			s.Feed(),
			s.Clock(),
		)
	}
	return s.dashboardService
}

func (s *serviceProvider) SweeperService() primary.SweeperService {
	if s.sweeperService == nil {
		sweeperLogger, err := logger.Named("sweeper")
		if err != nil {
			panic(fmt.Errorf("failed to create sweeper logger: %w", err))
		}

		s.sweeperService = service.NewSweeperService(
			sweeperLogger,
			s.GroupRepo(),
			s.WorkshopRepo(),
			s.Feed(),
			s.Clock(),
		)
	}
	return s.sweeperService
}

func (s *serviceProvider) NotifyService() primary.NotifyService {
	if s.notifyService == nil {
		notifyLogger, err := logger.Named("notify")
		if err != nil {
			panic(fmt.Errorf("failed to create notify logger: %w", err))
		}

		s.notifyService = service.NewNotifyService(
			notifyLogger,
			s.NotificationRepo(),
			s.DeviceRepo(),
			s.ParticipantRepo(),
			s.PushSender(),
			s.EmailSender(),
			s.Cache(),
		)
	}
	return s.notifyService
}

func (s *serviceProvider) AnnouncementService() primary.AnnouncementService {
	if s.announcementService == nil {
		announcementLogger, err := logger.Named("announcement")
		if err != nil {
			panic(fmt.Errorf("failed to create announcement logger: %w", err))
		}

		s.announcementService = service.NewAnnouncementService(
			announcementLogger,
			s.AnnouncementRepo(),
			s.ParticipantRepo(),
			s.NotifyService(),
			s.Clock(),
		)
	}
	return s.announcementService
}

func (s *serviceProvider) ParticipantService() primary.ParticipantService {
	if s.participantService == nil {
		s.participantService = service.NewParticipantService(
			s.ParticipantRepo(),
			s.AdministratorRepo(),
		)
	}
	return s.participantService
}

func (s *serviceProvider) ExportService() primary.ExportService {
	if s.exportService == nil {
		s.exportService = service.NewExportService(
			s.ActivityService(),
			s.RegistrationService(),
			s.cfg.App.BaseURL(),
		)
	}
	return s.exportService
}

// HTTP

func (s *serviceProvider) HTTPHandler() *httpapi.Handler {
	if s.httpHandler == nil {
		httpLogger, err := logger.Named("http")
		if err != nil {
			panic(fmt.Errorf("failed to create http logger: %w", err))
		}

		s.httpHandler = httpapi.New(
			httpLogger,
			s.ActivityService(),
			s.RegistrationService(),
			s.DashboardService(),
			s.SweeperService(),
			s.NotifyService(),
			s.AnnouncementService(),
			s.ParticipantService(),
			s.ExportService(),
			s.AuthProvider(),
		)
	}
	return s.httpHandler
}
