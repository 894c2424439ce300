package handlers

import (
	"github.com/Chuk2022/VKBot-GDM/internal/services"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService *services.UserService
	IntakeSvc   *services.IntakeService
	StatsSvc    *services.StatsService
	ReportSvc   *services.ReportService
}
