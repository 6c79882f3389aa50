// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-template-api/internal/config"
)

// Estados possíveis da origem de dados
const (
	StoreUnknown = "unknown"
	StoreUp      = "up"
	StoreDown    = "down"
)

const probeTimeout = 5 * time.Second

// Pinger é implementado pela conexão Postgres e pela integração do Supabase
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeStatus é o resultado da última verificação
type ProbeStatus struct {
	State     string
	CheckedAt time.Time
	Error     string
}

type StoreProbeConfig struct {
	CronSchedule string
	Enabled      bool
	Source       string
}

// StoreProbeService verifica periodicamente se a origem dos dados de referência responde
type StoreProbeService struct {
	scheduler *gocron.Scheduler
	pinger    Pinger
	config    StoreProbeConfig
	mu        sync.RWMutex
	status    ProbeStatus
	now       func() time.Time
}

func NewStoreProbeService(pinger Pinger, cfg *config.Config) *StoreProbeService {
	probeConfig := StoreProbeConfig{
		CronSchedule: cfg.StoreProbe.CronSchedule,
		Enabled:      cfg.StoreProbe.Enabled,
		Source:       cfg.ReferenceSource,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": probeConfig.CronSchedule,
		"source":        probeConfig.Source,
	}).Info("Configuração da verificação da origem de dados carregada")

	return &StoreProbeService{
		scheduler: gocron.NewScheduler(time.Local),
		pinger:    pinger,
		config:    probeConfig,
		status:    ProbeStatus{State: StoreUnknown},
		now:       time.Now,
	}
}

func (s *StoreProbeService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Verificação da origem de dados desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunNow(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar verificação da origem de dados: %w", err)
	}

	s.scheduler.StartAsync()

	// Primeira verificação sem esperar o próximo disparo da cron
	go s.RunNow(ctx)

	go func() {
		<-ctx.Done()
		logrus.Info("Parando verificação da origem de dados")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow executa uma verificação e guarda o resultado
func (s *StoreProbeService) RunNow(ctx context.Context) ProbeStatus {
	pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	status := ProbeStatus{State: StoreUp}
	if err := s.pinger.Ping(pingCtx); err != nil {
		status = ProbeStatus{State: StoreDown, Error: err.Error()}
		logrus.WithFields(logrus.Fields{
			"source": s.config.Source,
			"error":  err.Error(),
		}).Warn("Origem de dados não respondeu")
	}
	status.CheckedAt = s.now()

	s.mu.Lock()
	previous := s.status.State
	s.status = status
	s.mu.Unlock()

	if previous != status.State {
		logrus.WithFields(logrus.Fields{
			"source": s.config.Source,
			"from":   previous,
			"to":     status.State,
		}).Info("Estado da origem de dados alterado")
	}

	return status
}

func (s *StoreProbeService) Status() ProbeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
