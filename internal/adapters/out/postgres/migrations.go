package postgres

import (
	"gorm.io/gorm"

	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/postgres/assignmentrepo"
	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/postgres/courierrepo"
	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/postgres/customerrepo"
	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/postgres/orderrepo"
	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/postgres/productrepo"
	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/postgres/routerepo"
	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/postgres/storerepo"
	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/postgres/vehiclerepo"
)

// AutoMigrate creates or updates the database schema for every aggregate
// persisted by this adapter.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&customerrepo.CustomerDTO{},
		&productrepo.ProductDTO{},
		&storerepo.StoreDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&courierrepo.CourierDTO{},
		&vehiclerepo.VehicleDTO{},
		&assignmentrepo.AssignmentDTO{},
		&assignmentrepo.OrderAssignmentDTO{},
		&routerepo.RouteDTO{},
		&routerepo.StopDTO{},
	)
}
