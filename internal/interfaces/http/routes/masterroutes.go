package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/permission"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/handlers"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/middleware"
)

// MasterRouteConfig holds dependencies for the machine, instrument and user
// master data routes.
type MasterRouteConfig struct {
	MachineHandler       *handlers.MachineHandler
	InstrumentHandler    *handlers.InstrumentHandler
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupMasterRoutes configures CRUD routes for the master collections.
func SetupMasterRoutes(engine *gin.Engine, cfg *MasterRouteConfig) {
	setupCRUD(engine.Group("/machines"), cfg, permission.ResourceMachine, crudHandlers{
		create: cfg.MachineHandler.CreateMachine,
		list:   cfg.MachineHandler.ListMachines,
		get:    cfg.MachineHandler.GetMachine,
		update: cfg.MachineHandler.UpdateMachine,
		delete: cfg.MachineHandler.DeleteMachine,
	})
	setupCRUD(engine.Group("/instruments"), cfg, permission.ResourceInstrument, crudHandlers{
		create: cfg.InstrumentHandler.CreateInstrument,
		list:   cfg.InstrumentHandler.ListInstruments,
		get:    cfg.InstrumentHandler.GetInstrument,
		update: cfg.InstrumentHandler.UpdateInstrument,
		delete: cfg.InstrumentHandler.DeleteInstrument,
	})
	setupCRUD(engine.Group("/users"), cfg, permission.ResourceUser, crudHandlers{
		create: cfg.UserHandler.CreateUser,
		list:   cfg.UserHandler.ListUsers,
		get:    cfg.UserHandler.GetUser,
		update: cfg.UserHandler.UpdateUser,
		delete: cfg.UserHandler.DeleteUser,
	})
}

type crudHandlers struct {
	create, list, get, update, delete gin.HandlerFunc
}

func setupCRUD(group *gin.RouterGroup, cfg *MasterRouteConfig, resource string, h crudHandlers) {
	perm := cfg.PermissionMiddleware

	group.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Collection operations (no ID parameter)
		group.POST("", perm.RequirePermission(resource, permission.ActionCreate), h.create)
		group.GET("", perm.RequirePermission(resource, permission.ActionRead), h.list)

		group.GET("/:id", perm.RequirePermission(resource, permission.ActionRead), h.get)
		group.PUT("/:id", perm.RequirePermission(resource, permission.ActionUpdate), h.update)
		group.DELETE("/:id", perm.RequirePermission(resource, permission.ActionDelete), h.delete)
	}
}
