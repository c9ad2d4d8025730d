package app

import (
	"fmt"

	accountsrepo "spacebook/internal/accounts/repository"
	"spacebook/internal/events"
	reservationshandler "spacebook/internal/reservations/handler"
	reservationsrepo "spacebook/internal/reservations/repository"
	reservationsservice "spacebook/internal/reservations/service"
	reservationsvalidator "spacebook/internal/reservations/validator"
	spaceshandler "spacebook/internal/spaces/handler"
	spacesrepo "spacebook/internal/spaces/repository"
	spacesservice "spacebook/internal/spaces/service"
	spacesvalidator "spacebook/internal/spaces/validator"
	"spacebook/pkg/clock"
	"spacebook/pkg/config"
	"spacebook/pkg/contracts"
	kafka_config "spacebook/pkg/kafka/config"
)

// Services holds the repositories and services built for one storage driver.
type Services struct {
	SpaceRepo       spacesrepo.SpaceRepository
	AccountRepo     accountsrepo.AccountRepository
	ReservationRepo reservationsrepo.ReservationRepository

	Spaces       spacesservice.SpaceService
	Reservations reservationsservice.ReservationService
	Publisher    events.Publisher
}

// InitServices builds the storage stack for cfg.StorageDriver. The storage
// client must already be open. A nil publisher is replaced by the Kafka
// publisher when Kafka is enabled, otherwise by a no-op.
func InitServices(cfg *config.Config, clk clock.Clock, publisher events.Publisher) (*Services, error) {
	if publisher == nil {
		var err error
		publisher, err = newPublisher(cfg)
		if err != nil {
			return nil, err
		}
	}

	spaceValidator, err := spacesvalidator.NewSpaceValidator()
	if err != nil {
		return nil, fmt.Errorf("space validator: %w", err)
	}
	reservationValidator, err := reservationsvalidator.NewReservationValidator()
	if err != nil {
		return nil, fmt.Errorf("reservation validator: %w", err)
	}

	s := &Services{
		SpaceRepo:       spacesrepo.New(cfg),
		AccountRepo:     accountsrepo.New(cfg),
		ReservationRepo: reservationsrepo.New(cfg),
		Publisher:       publisher,
	}

	s.Spaces = spacesservice.NewSpaceService(
		s.SpaceRepo,
		s.ReservationRepo,
		spaceValidator,
		spacesservice.Defaults{
			SlotDurationMin: cfg.DefaultSlotDurationMin,
			MaxAdvanceDays:  cfg.DefaultMaxAdvanceDays,
		},
		cfg.Log,
	)
	s.Reservations = reservationsservice.NewReservationService(
		s.ReservationRepo,
		s.SpaceRepo,
		s.AccountRepo,
		publisher,
		reservationValidator,
		clk,
		reservationsservice.Options{EnforceHorizon: cfg.EnforceBookingHorizon},
		cfg.Log,
	)

	cfg.Log.Info("Services initialized",
		"storage_driver", cfg.StorageDriver,
		"enforce_booking_horizon", cfg.EnforceBookingHorizon,
		"kafka_enabled", cfg.KafkaEnabled,
	)
	return s, nil
}

func (s *Services) Handlers(cfg *config.Config) []contracts.Handler {
	return []contracts.Handler{
		spaceshandler.NewSpaceHandler(s.Spaces, cfg.Log),
		reservationshandler.NewReservationHandler(s.Reservations, cfg.Log),
	}
}

func newPublisher(cfg *config.Config) (events.Publisher, error) {
	if !cfg.KafkaEnabled {
		return events.NewNoopPublisher(), nil
	}
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		return nil, fmt.Errorf("kafka config: %w", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)
	publisher, err := events.NewKafkaPublisher(kafkaCfg, cfg.KafkaReservationsTopic, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: %w", err)
	}
	cfg.Log.Info("Kafka publisher enabled", "topic", cfg.KafkaReservationsTopic)
	return publisher, nil
}
